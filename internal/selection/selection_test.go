package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rifa-ledger/internal/raffle"
	"rifa-ledger/internal/selection"
)

func TestParseRange(t *testing.T) {
	numbers, err := selection.ParseRange("10-30")
	require.NoError(t, err)
	require.Len(t, numbers, 21)
	assert.Equal(t, 10, numbers[0])
	assert.Equal(t, 30, numbers[20])
}

func TestParseRange_SingleValue(t *testing.T) {
	numbers, err := selection.ParseRange("7-7")
	require.NoError(t, err)
	assert.Equal(t, []int{7}, numbers)
}

func TestParseRange_Whitespace(t *testing.T) {
	numbers, err := selection.ParseRange("  100 - 150 ")
	require.NoError(t, err)
	require.Len(t, numbers, 51)
	assert.Equal(t, 100, numbers[0])
	assert.Equal(t, 150, numbers[50])
}

func TestParseRange_Invalid(t *testing.T) {
	for _, input := range []string{"abc", "30-10", "0-5", "10", "10-", "-5", "1-2-3", ""} {
		t.Run(input, func(t *testing.T) {
			_, err := selection.ParseRange(input)
			require.Error(t, err)

			var validation *raffle.ValidationError

			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []int{1, 5, 12}, selection.ParseList("1, 5,12"))
}

func TestParseList_DropsInvalidEntries(t *testing.T) {
	assert.Equal(t, []int{3, 8}, selection.ParseList("3, abc, , -1, 0, 8"))
	assert.Empty(t, selection.ParseList(""))
	assert.Empty(t, selection.ParseList("x, y"))
}

func TestCombine(t *testing.T) {
	numbers, err := selection.Combine("2", "5, 9", "11-13", 20)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 9, 11, 12, 13}, numbers)
}

func TestCombine_FiltersOutOfRange(t *testing.T) {
	// 0 and 25 fall outside 1..10 and must never reach the sale engine.
	numbers, err := selection.Combine("25", "0, 3", "9-10", 10)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 9, 10}, numbers)
}

func TestCombine_KeepsDuplicates(t *testing.T) {
	// De-duplication belongs to the sale engine, not the input parser.
	numbers, err := selection.Combine("5", "5", "5-6", 10)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 5, 5, 6}, numbers)
}

func TestCombine_BadRange(t *testing.T) {
	_, err := selection.Combine("", "1", "30-10", 100)
	require.Error(t, err)

	var validation *raffle.ValidationError

	assert.ErrorAs(t, err, &validation)
}

func TestCombine_AllEmpty(t *testing.T) {
	numbers, err := selection.Combine("", "", "", 100)
	require.NoError(t, err)
	assert.Empty(t, numbers)
}
