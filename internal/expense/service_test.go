package expense_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"custodia/internal/expense"
)

func testDate(y int, m time.Month, d int) expense.Date {
	return expense.Date{Year: y, Month: m, Day: d}
}

func TestService_Create(t *testing.T) {
	userID := uuid.New()

	type args struct {
		params expense.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *expense.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: expense.CreateParams{
					ChildID:     uuid.New(),
					Description: "Mensalidade escolar",
					Amount:      decimal.NewFromFloat(850.00),
					Date:        testDate(2024, time.March, 5),
					Category:    "educação",
					Status:      expense.StatusPaid,
				},
			},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					CreateExpense(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *expense.Expense) error {
						e.ID = uuid.New()
						e.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "ZeroAmount",
			args: args{
				params: expense.CreateParams{
					Amount: decimal.Zero,
					Date:   testDate(2024, time.March, 5),
					Status: expense.StatusPaid,
				},
			},
			wantErr: expense.ErrInvalidAmount,
		},
		{
			name: "NegativeAmount",
			args: args{
				params: expense.CreateParams{
					Amount: decimal.NewFromFloat(-10),
					Date:   testDate(2024, time.March, 5),
					Status: expense.StatusPaid,
				},
			},
			wantErr: expense.ErrInvalidAmount,
		},
		{
			name: "InvalidStatus",
			args: args{
				params: expense.CreateParams{
					Amount: decimal.NewFromFloat(10),
					Date:   testDate(2024, time.March, 5),
					Status: expense.Status("quitado"),
				},
			},
			wantErr: errors.New("invalid status"),
		},
		{
			name: "RepoError",
			args: args{
				params: expense.CreateParams{
					Amount: decimal.NewFromFloat(10),
					Date:   testDate(2024, time.March, 5),
					Status: expense.StatusPending,
				},
			},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					CreateExpense(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := expense.NewService(repo)
			got, err := svc.Create(context.Background(), userID, tt.args.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, userID, got.UserID)
		})
	}
}

func TestService_AttachReceipt(t *testing.T) {
	userID := uuid.New()
	expenseID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		repo.EXPECT().
			GetExpense(gomock.Any(), userID, expenseID).
			Return(&expense.Expense{ID: expenseID, UserID: userID}, nil)
		repo.EXPECT().
			AttachReceipt(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *expense.Receipt) error {
				r.ID = uuid.New()
				return nil
			})

		svc := expense.NewService(repo)
		got, err := svc.AttachReceipt(context.Background(), userID, expense.ReceiptParams{
			ExpenseID:   expenseID,
			StoragePath: "users/x/receipts/a.jpg",
			FileName:    "recibo.jpg",
			MIMEType:    "image/jpeg",
		})

		require.NoError(t, err)
		assert.Equal(t, expenseID, got.ExpenseID)
		assert.NotEmpty(t, got.ID)
	})

	t.Run("ExpenseNotOwned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		repo.EXPECT().
			GetExpense(gomock.Any(), userID, expenseID).
			Return(nil, expense.ErrNotFound)

		svc := expense.NewService(repo)
		got, err := svc.AttachReceipt(context.Background(), userID, expense.ReceiptParams{
			ExpenseID: expenseID,
		})

		assert.ErrorIs(t, err, expense.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestService_CreateBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	repo := expense.NewMockRepository(ctrl)

	// Only the two valid params reach the repository.
	repo.EXPECT().
		CreateExpense(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *expense.Expense) error {
			e.ID = uuid.New()
			return nil
		}).
		Times(2)

	svc := expense.NewService(repo)
	params := []expense.CreateParams{
		{Amount: decimal.NewFromFloat(100), Date: testDate(2024, time.May, 1), Status: expense.StatusPaid},
		{Amount: decimal.Zero, Date: testDate(2024, time.May, 2), Status: expense.StatusPaid},
		{Amount: decimal.NewFromFloat(-5), Date: testDate(2024, time.May, 3), Status: expense.StatusPaid},
		{Amount: decimal.NewFromFloat(50), Date: expense.Date{}, Status: expense.StatusPaid},
		{Amount: decimal.NewFromFloat(25.50), Date: testDate(2024, time.May, 4), Status: expense.StatusPending},
	}

	created, skipped, err := svc.CreateBatch(context.Background(), userID, params)
	require.NoError(t, err)
	assert.Len(t, created, 2)
	assert.Equal(t, 3, skipped)
}

func TestService_Update_InvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	svc := expense.NewService(repo)

	err := svc.Update(context.Background(), &expense.Expense{Amount: decimal.Zero})
	assert.ErrorIs(t, err, expense.ErrInvalidAmount)
}
