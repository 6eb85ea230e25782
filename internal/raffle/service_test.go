package raffle_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rifa-ledger/internal/raffle"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    raffle.CreateParams
		setupMock func(m *raffle.MockRepository)
		wantErr   string
	}

	tests := []testCase{
		{
			name:   "Success",
			params: raffle.CreateParams{Name: "Rifa Escolar", TotalNumbers: 100, NumberPrice: 2.5},
			setupMock: func(m *raffle.MockRepository) {
				m.EXPECT().
					ReplaceRaffle(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *raffle.Raffle) error {
						assert.NotEmpty(t, r.ID)
						assert.Equal(t, "Rifa Escolar", r.Name)
						assert.Equal(t, 100, r.TotalNumbers)
						assert.Equal(t, r.CreatedAt, r.UpdatedAt)
						return nil
					})
			},
		},
		{
			name:   "TrimsName",
			params: raffle.CreateParams{Name: "  X  ", TotalNumbers: 5, NumberPrice: 1},
			setupMock: func(m *raffle.MockRepository) {
				m.EXPECT().
					ReplaceRaffle(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *raffle.Raffle) error {
						assert.Equal(t, "X", r.Name)
						return nil
					})
			},
		},
		{
			name:    "EmptyName",
			params:  raffle.CreateParams{Name: "   ", TotalNumbers: 10, NumberPrice: 1},
			wantErr: "name",
		},
		{
			name:    "ZeroTotal",
			params:  raffle.CreateParams{Name: "X", TotalNumbers: 0, NumberPrice: 1},
			wantErr: "total numbers",
		},
		{
			name:    "NegativeTotal",
			params:  raffle.CreateParams{Name: "X", TotalNumbers: -3, NumberPrice: 1},
			wantErr: "total numbers",
		},
		{
			name:    "ZeroPrice",
			params:  raffle.CreateParams{Name: "X", TotalNumbers: 10, NumberPrice: 0},
			wantErr: "price",
		},
		{
			name:   "RepoError",
			params: raffle.CreateParams{Name: "X", TotalNumbers: 10, NumberPrice: 1},
			setupMock: func(m *raffle.MockRepository) {
				m.EXPECT().
					ReplaceRaffle(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := raffle.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := raffle.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Create_ValidationSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: invalid input must never reach the repository.
	repo := raffle.NewMockRepository(ctrl)
	svc := raffle.NewService(repo)

	_, err := svc.Create(context.Background(), raffle.CreateParams{Name: "", TotalNumbers: 10, NumberPrice: 1})

	var validation *raffle.ValidationError

	require.ErrorAs(t, err, &validation)
}

func testRaffle() *raffle.Raffle {
	return &raffle.Raffle{
		ID:           "raffle-1",
		Name:         "X",
		TotalNumbers: 5,
		NumberPrice:  1,
	}
}

func TestService_Sell(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := raffle.NewMockRepository(ctrl)
	tx := raffle.NewMockSaleTx(ctrl)
	svc := raffle.NewService(repo)

	r := testRaffle()

	var inserted *raffle.Sale

	repo.EXPECT().BeginSale(gomock.Any()).Return(tx, nil)
	tx.EXPECT().SoldNumbers(gomock.Any(), "raffle-1", []int{2, 4}).Return(nil, nil)
	tx.EXPECT().
		InsertSale(gomock.Any(), gomock.Any(), []int{2, 4}).
		DoAndReturn(func(_ context.Context, sale *raffle.Sale, _ []int) error {
			inserted = sale
			return nil
		})
	tx.EXPECT().MarkSold(gomock.Any(), gomock.Any(), []int{2, 4}).Return(nil)
	tx.EXPECT().TouchRaffle(gomock.Any(), "raffle-1", gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	// Input arrives unsorted with a duplicate; the engine must hand the store
	// the de-duplicated ascending set.
	sale, err := svc.Sell(context.Background(), r, []int{4, 2, 4}, "Ana", "555")
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, inserted, sale)
	assert.Equal(t, "raffle-1", sale.RaffleID)
	assert.Equal(t, "Ana", sale.BuyerName)
	assert.Equal(t, "555", sale.BuyerPhone)
	assert.Equal(t, 2.0, sale.TotalPaid)
	assert.False(t, sale.SoldAt.IsZero())
}

func TestService_Sell_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := raffle.NewMockRepository(ctrl)
	tx := raffle.NewMockSaleTx(ctrl)
	svc := raffle.NewService(repo)

	repo.EXPECT().BeginSale(gomock.Any()).Return(tx, nil)
	tx.EXPECT().SoldNumbers(gomock.Any(), "raffle-1", []int{4}).Return([]int{4}, nil)
	tx.EXPECT().Rollback().Return(nil)

	sale, err := svc.Sell(context.Background(), testRaffle(), []int{4}, "Luis", "777")
	require.Error(t, err)
	assert.Nil(t, sale)

	var conflict *raffle.ConflictError

	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []int{4}, conflict.Numbers)
	assert.Contains(t, err.Error(), "4")
}

func TestService_Sell_ConflictListsAllNumbers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := raffle.NewMockRepository(ctrl)
	tx := raffle.NewMockSaleTx(ctrl)
	svc := raffle.NewService(repo)

	repo.EXPECT().BeginSale(gomock.Any()).Return(tx, nil)
	tx.EXPECT().SoldNumbers(gomock.Any(), "raffle-1", []int{2, 3, 7}).Return([]int{3, 7}, nil)
	tx.EXPECT().Rollback().Return(nil)

	_, err := svc.Sell(context.Background(), &raffle.Raffle{ID: "raffle-1", TotalNumbers: 10, NumberPrice: 1}, []int{7, 3, 2}, "Ana", "555")

	var conflict *raffle.ConflictError

	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []int{3, 7}, conflict.Numbers)
	assert.Equal(t, "numbers already sold: 3, 7", conflict.Error())
}

func TestService_Sell_Validation(t *testing.T) {
	type testCase struct {
		name    string
		numbers []int
		buyer   string
		phone   string
	}

	tests := []testCase{
		{name: "EmptyBuyerName", numbers: []int{1}, buyer: "  ", phone: "555"},
		{name: "EmptyBuyerPhone", numbers: []int{1}, buyer: "Ana", phone: ""},
		{name: "NoNumbers", numbers: nil, buyer: "Ana", phone: "555"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// Validation failures must not open a store transaction.
			repo := raffle.NewMockRepository(ctrl)
			svc := raffle.NewService(repo)

			_, err := svc.Sell(context.Background(), testRaffle(), tt.numbers, tt.buyer, tt.phone)

			var validation *raffle.ValidationError

			require.ErrorAs(t, err, &validation)
		})
	}
}

func TestService_Sell_CommitError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := raffle.NewMockRepository(ctrl)
	tx := raffle.NewMockSaleTx(ctrl)
	svc := raffle.NewService(repo)

	repo.EXPECT().BeginSale(gomock.Any()).Return(tx, nil)
	tx.EXPECT().SoldNumbers(gomock.Any(), "raffle-1", []int{1}).Return(nil, nil)
	tx.EXPECT().InsertSale(gomock.Any(), gomock.Any(), []int{1}).Return(nil)
	tx.EXPECT().MarkSold(gomock.Any(), gomock.Any(), []int{1}).Return(nil)
	tx.EXPECT().TouchRaffle(gomock.Any(), "raffle-1", gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(errors.New("commit failed"))
	tx.EXPECT().Rollback().Return(nil)

	_, err := svc.Sell(context.Background(), testRaffle(), []int{1}, "Ana", "555")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit")
}

func TestService_Metrics(t *testing.T) {
	type testCase struct {
		name  string
		total int
		sold  int
		price float64
		want  raffle.Metrics
	}

	tests := []testCase{
		{
			name:  "PartiallySold",
			total: 100, sold: 37, price: 2.5,
			want: raffle.Metrics{Total: 100, Sold: 37, Available: 63, Progress: 37.0, Collected: 92.5},
		},
		{
			name:  "Empty",
			total: 0, sold: 0, price: 2.5,
			want: raffle.Metrics{},
		},
		{
			name:  "AllSold",
			total: 10, sold: 10, price: 1.5,
			want: raffle.Metrics{Total: 10, Sold: 10, Available: 0, Progress: 100, Collected: 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := raffle.NewMockRepository(ctrl)
			repo.EXPECT().CountNumbers(gomock.Any(), "raffle-1").Return(tt.total, tt.sold, nil)

			svc := raffle.NewService(repo)
			got, err := svc.Metrics(context.Background(), "raffle-1", tt.price)
			require.NoError(t, err)
			assert.Equal(t, &tt.want, got)
		})
	}
}

func TestService_Current_NoRaffle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := raffle.NewMockRepository(ctrl)
	repo.EXPECT().CurrentRaffle(gomock.Any()).Return(nil, nil)

	svc := raffle.NewService(repo)
	got, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNormalizeNumbers(t *testing.T) {
	assert.Equal(t, []int{2, 4, 9}, raffle.NormalizeNumbers([]int{9, 4, 2, 4, 9}))
	assert.Empty(t, raffle.NormalizeNumbers(nil))
}

func TestTotal_Exact(t *testing.T) {
	assert.Equal(t, 92.5, raffle.Total(37, 2.5))
	assert.Equal(t, 0.3, raffle.Total(3, 0.1))
	assert.Equal(t, 0.0, raffle.Total(0, 2.5))
}
