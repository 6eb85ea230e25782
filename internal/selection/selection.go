// Package selection turns the three ticket-number input modes (a single
// number, a comma-separated list, an inclusive start-end range) into the
// number set handed to the sale engine. Numbers outside 1..totalNumbers are
// filtered out here and never reach the engine.
package selection

import (
	"regexp"
	"strconv"
	"strings"

	"rifa-ledger/internal/raffle"
)

var rangePattern = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)$`)

// ParseRange expands "start-end" into the inclusive run of integers it names.
// Both bounds must be positive and start must not exceed end.
func ParseRange(input string) ([]int, error) {
	match := rangePattern.FindStringSubmatch(strings.TrimSpace(input))
	if match == nil {
		return nil, raffle.Validationf("range must look like start-end, for example 10-30")
	}

	start, err := strconv.Atoi(match[1])
	if err != nil {
		return nil, raffle.Validationf("invalid range start %q", match[1])
	}

	end, err := strconv.Atoi(match[2])
	if err != nil {
		return nil, raffle.Validationf("invalid range end %q", match[2])
	}

	if start <= 0 || end <= 0 || start > end {
		return nil, raffle.Validationf("invalid range %d-%d", start, end)
	}

	numbers := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		numbers = append(numbers, n)
	}

	return numbers, nil
}

// ParseList reads a comma-separated list of numbers. Blank and non-numeric
// entries are dropped rather than rejected, matching how the original app
// treated manual input.
func ParseList(input string) []int {
	var numbers []int

	for _, part := range strings.Split(input, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			continue
		}

		numbers = append(numbers, n)
	}

	return numbers
}

// Combine merges the three input modes and keeps only numbers inside
// 1..totalNumbers. Only a malformed range is an error; the single and list
// inputs are tolerant. Duplicates survive here — the engine de-duplicates.
func Combine(single, list, rng string, totalNumbers int) ([]int, error) {
	var combined []int

	if s := strings.TrimSpace(single); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			combined = append(combined, n)
		}
	}

	combined = append(combined, ParseList(list)...)

	if strings.TrimSpace(rng) != "" {
		numbers, err := ParseRange(rng)
		if err != nil {
			return nil, err
		}

		combined = append(combined, numbers...)
	}

	inRange := combined[:0]

	for _, n := range combined {
		if n >= 1 && n <= totalNumbers {
			inRange = append(inRange, n)
		}
	}

	return inRange, nil
}
