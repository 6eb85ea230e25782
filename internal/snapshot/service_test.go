package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rifa-ledger/internal/raffle"
)

// memRepo keeps the replaced state in memory so export/import round-trips can
// be asserted without a database.
type memRepo struct {
	raffle  *raffle.Raffle
	numbers []*raffle.Number
	sales   []*raffle.Sale
	items   []*raffle.SaleItem

	replaceCalls int
}

func (m *memRepo) GetRaffle(_ context.Context, id string) (*raffle.Raffle, error) {
	if m.raffle == nil || m.raffle.ID != id {
		return nil, raffle.ErrNotFound
	}

	return m.raffle, nil
}

func (m *memRepo) ListNumbers(_ context.Context, _ string) ([]*raffle.Number, error) {
	return m.numbers, nil
}

func (m *memRepo) ListSales(_ context.Context, _ string) ([]*raffle.Sale, error) {
	return m.sales, nil
}

func (m *memRepo) ListSaleItems(_ context.Context, _ string) ([]*raffle.SaleItem, error) {
	return m.items, nil
}

func (m *memRepo) ReplaceAll(_ context.Context, r *raffle.Raffle, numbers []*raffle.Number, sales []*raffle.Sale, items []*raffle.SaleItem) error {
	m.raffle = r
	m.numbers = numbers
	m.sales = sales
	m.items = items
	m.replaceCalls++

	return nil
}

func seededRepo() *memRepo {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	soldAt := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)

	return &memRepo{
		raffle: &raffle.Raffle{
			ID: "raffle-1", Name: "Rifa Escolar", TotalNumbers: 3, NumberPrice: 2.5,
			CreatedAt: created, UpdatedAt: soldAt,
		},
		numbers: []*raffle.Number{
			{RaffleID: "raffle-1", NumberValue: 1, State: raffle.StateAvailable},
			{RaffleID: "raffle-1", NumberValue: 2, State: raffle.StateSold, SoldAt: &soldAt, BuyerName: "Ana", BuyerPhone: "555"},
			{RaffleID: "raffle-1", NumberValue: 3, State: raffle.StateAvailable},
		},
		sales: []*raffle.Sale{
			{ID: "sale-1", RaffleID: "raffle-1", BuyerName: "Ana", BuyerPhone: "555", TotalPaid: 2.5, SoldAt: soldAt},
		},
		items: []*raffle.SaleItem{
			{SaleID: "sale-1", RaffleID: "raffle-1", NumberValue: 2},
		},
	}
}

func TestService_Export(t *testing.T) {
	repo := seededRepo()
	svc := NewService(repo)

	payload, err := svc.Export(context.Background(), "raffle-1")
	require.NoError(t, err)

	assert.False(t, payload.ExportedAt.IsZero())
	assert.Equal(t, "raffle-1", payload.Raffle.ID)
	assert.Equal(t, 2.5, payload.Raffle.NumberPrice)
	require.Len(t, payload.Numbers, 3)
	assert.Equal(t, "disponible", payload.Numbers[0].State)
	assert.Equal(t, "vendido", payload.Numbers[1].State)
	assert.Equal(t, "Ana", payload.Numbers[1].BuyerName)
	require.Len(t, payload.Sales, 1)
	require.Len(t, payload.SaleItems, 1)
	assert.Equal(t, 2, payload.SaleItems[0].NumberValue)
}

func TestService_Export_NotFound(t *testing.T) {
	svc := NewService(&memRepo{})

	_, err := svc.Export(context.Background(), "missing")
	require.ErrorIs(t, err, raffle.ErrNotFound)
}

func TestService_Import_RoundTrip(t *testing.T) {
	source := seededRepo()
	svc := NewService(source)

	payload, err := svc.Export(context.Background(), "raffle-1")
	require.NoError(t, err)

	// Import into a different store, then export again: both snapshots must
	// describe the same state, identities and timestamps included.
	dest := &memRepo{}
	destSvc := NewService(dest)

	require.NoError(t, destSvc.Import(context.Background(), payload))
	assert.Equal(t, 1, dest.replaceCalls)

	reExported, err := destSvc.Export(context.Background(), "raffle-1")
	require.NoError(t, err)

	assert.Equal(t, payload.Raffle, reExported.Raffle)
	assert.Equal(t, payload.Numbers, reExported.Numbers)
	assert.Equal(t, payload.Sales, reExported.Sales)
	assert.Equal(t, payload.SaleItems, reExported.SaleItems)
}

func TestService_Import_NoRaffle(t *testing.T) {
	dest := &memRepo{}
	svc := NewService(dest)

	var validation *raffle.ValidationError

	err := svc.Import(context.Background(), &Payload{})
	require.ErrorAs(t, err, &validation)
	assert.Zero(t, dest.replaceCalls)

	err = svc.Import(context.Background(), nil)
	require.ErrorAs(t, err, &validation)
}

func TestService_WriteReadFile(t *testing.T) {
	svc := NewService(seededRepo())

	payload, err := svc.Export(context.Background(), "raffle-1")
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "backups")

	path, err := svc.WriteFile(payload, dir)
	require.NoError(t, err)

	name := filepath.Base(path)
	assert.True(t, strings.HasPrefix(name, "rifa-backup-"), "unexpected backup name %q", name)
	assert.True(t, strings.HasSuffix(name, ".json"), "unexpected backup name %q", name)
	assert.NotContains(t, name[len("rifa-backup-"):], ":")

	read, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, read)
}

func TestPayload_WireFieldNames(t *testing.T) {
	svc := NewService(seededRepo())

	payload, err := svc.Export(context.Background(), "raffle-1")
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	// The original app's backup files use exactly these names; renaming any
	// of them breaks imports of existing backups.
	for _, field := range []string{
		`"exportedAt"`, `"raffle"`, `"numbers"`, `"sales"`, `"saleItems"`,
		`"totalNumbers"`, `"numberPrice"`, `"createdAt"`, `"updatedAt"`,
		`"raffleId"`, `"numberValue"`, `"state"`, `"soldAt"`,
		`"buyerName"`, `"buyerPhone"`, `"totalPaid"`, `"soldAt"`, `"saleId"`,
		`"disponible"`, `"vendido"`,
	} {
		assert.Contains(t, string(data), field)
	}

	// Sale metadata on available numbers is omitted, not emitted empty.
	var decoded map[string]any

	require.NoError(t, json.Unmarshal(data, &decoded))

	numbers := decoded["numbers"].([]any)
	first := numbers[0].(map[string]any)
	assert.NotContains(t, first, "soldAt")
	assert.NotContains(t, first, "buyerName")
}

func TestReadFile_OriginalAppBackup(t *testing.T) {
	// A trimmed-down file in the exact shape the original mobile app wrote.
	raw := `{
  "exportedAt": "2026-01-15T12:00:00.000Z",
  "raffle": {
    "id": "raffle-1736942400000",
    "name": "Rifa",
    "totalNumbers": 2,
    "numberPrice": 1.5,
    "createdAt": "2026-01-10T09:00:00.000Z",
    "updatedAt": "2026-01-12T09:00:00.000Z"
  },
  "numbers": [
    {"raffleId": "raffle-1736942400000", "numberValue": 1, "state": "vendido", "soldAt": "2026-01-12T09:00:00.000Z", "buyerName": "Ana", "buyerPhone": "555"},
    {"raffleId": "raffle-1736942400000", "numberValue": 2, "state": "disponible"}
  ],
  "sales": [
    {"id": "sale-1736942500000", "raffleId": "raffle-1736942400000", "buyerName": "Ana", "buyerPhone": "555", "totalPaid": 1.5, "soldAt": "2026-01-12T09:00:00.000Z"}
  ],
  "saleItems": [
    {"saleId": "sale-1736942500000", "raffleId": "raffle-1736942400000", "numberValue": 1}
  ]
}`

	path := filepath.Join(t.TempDir(), "rifa-backup.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	payload, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "raffle-1736942400000", payload.Raffle.ID)
	require.Len(t, payload.Numbers, 2)
	assert.Equal(t, "vendido", payload.Numbers[0].State)
	require.NotNil(t, payload.Numbers[0].SoldAt)
	assert.Nil(t, payload.Numbers[1].SoldAt)

	dest := &memRepo{}
	require.NoError(t, NewService(dest).Import(context.Background(), payload))
	assert.Equal(t, "raffle-1736942400000", dest.raffle.ID)
}
