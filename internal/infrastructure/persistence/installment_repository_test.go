package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/bookshop/backend/internal/domain/installment"
	"github.com/bookshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlan(t *testing.T, orderID uuid.UUID) *installment.Installment {
	t.Helper()

	plan, err := installment.NewInstallment(orderID, installment.Config{
		TotalAmount:          decimal.NewFromInt(100),
		InitialPayment:       decimal.NewFromInt(20),
		NumberOfInstallments: 4,
		InstallmentAmount:    decimal.NewFromInt(20),
		PaymentIntervalDays:  30,
		StartDate:            time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return plan
}

func TestGormInstallmentRepository_SaveAndFindByOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInstallmentRepository(db)
	ctx := context.Background()

	t.Run("round-trips a plan with its schedule", func(t *testing.T) {
		orderID := uuid.New()
		plan := newTestPlan(t, orderID)

		require.NoError(t, repo.Save(ctx, plan))

		found, err := repo.FindByOrder(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, plan.ID, found.ID)
		assert.Equal(t, installment.StatusActive, found.Status)
		require.Len(t, found.Payments, 5)
		for i, row := range found.Payments {
			assert.Equal(t, i, row.Number)
		}
		assert.True(t, plan.TotalAmount.Equal(found.TotalAmount))
	})

	t.Run("returns ErrNotFound when order has no plan", func(t *testing.T) {
		_, err := repo.FindByOrder(ctx, uuid.New())
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("persists applied payments", func(t *testing.T) {
		orderID := uuid.New()
		plan := newTestPlan(t, orderID)
		require.NoError(t, repo.Save(ctx, plan))

		require.NoError(t, plan.ApplyPayment(decimal.NewFromInt(30), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, repo.Save(ctx, plan))

		found, err := repo.FindByOrder(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, installment.PaymentStatusPaid, found.Payments[0].Status)
		assert.Equal(t, installment.PaymentStatusPartiallyPaid, found.Payments[1].Status)
		assert.True(t, found.Payments[1].PaidAmount.Equal(decimal.NewFromInt(10)))
	})
}

func TestGormInstallmentRepository_ExistsByOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInstallmentRepository(db)
	ctx := context.Background()

	orderID := uuid.New()
	require.NoError(t, repo.Save(ctx, newTestPlan(t, orderID)))

	exists, err := repo.ExistsByOrder(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByOrder(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormInstallmentRepository_FindByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInstallmentRepository(db)
	ctx := context.Background()

	active := newTestPlan(t, uuid.New())
	cancelled := newTestPlan(t, uuid.New())
	require.NoError(t, cancelled.Cancel())
	require.NoError(t, repo.Save(ctx, active))
	require.NoError(t, repo.Save(ctx, cancelled))

	result, err := repo.FindByStatus(ctx, installment.StatusActive, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, active.ID, result.Items[0].ID)
}
