package order

import (
	"testing"

	"github.com/bookshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, name string, quantity int, price float64) OrderItem {
	t.Helper()
	unitPrice := valueobject.NewMoneyUSDFromFloat(price)
	item, err := NewOrderItem(uuid.New(), name, quantity, unitPrice)
	require.NoError(t, err)
	return *item
}

func TestNewOrderItem(t *testing.T) {
	price := valueobject.NewMoneyUSDFromFloat(15.50)

	t.Run("computes line total from quantity and unit price", func(t *testing.T) {
		item, err := NewOrderItem(uuid.New(), "Go in Practice", 3, price)
		require.NoError(t, err)

		assert.True(t, item.LineTotal.Equal(decimal.NewFromFloat(46.50)),
			"expected 46.50, got %s", item.LineTotal)
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewOrderItem(uuid.Nil, "Go in Practice", 3, price)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewOrderItem(uuid.New(), "Go in Practice", 0, price)
		assert.Error(t, err)
	})
}

func TestNewOrder(t *testing.T) {
	clientID := uuid.New()

	t.Run("sums line totals into the order total", func(t *testing.T) {
		items := []OrderItem{
			mustItem(t, "Algebra I", 2, 25.00),
			mustItem(t, "Notebook", 5, 3.50),
		}

		o, err := NewOrder(clientID, items, PaymentMethodCash, "counter sale")
		require.NoError(t, err)

		assert.True(t, o.TotalAmount.Equal(decimal.NewFromFloat(67.50)),
			"expected 67.50, got %s", o.TotalAmount)
		assert.Equal(t, StatusInProgress, o.Status)
		assert.Equal(t, 2, o.ItemCount())
	})

	t.Run("stamps items with the order ID", func(t *testing.T) {
		items := []OrderItem{mustItem(t, "Algebra I", 1, 25.00)}

		o, err := NewOrder(clientID, items, PaymentMethodCard, "")
		require.NoError(t, err)

		for _, item := range o.Items {
			assert.Equal(t, o.ID, item.OrderID)
		}
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		_, err := NewOrder(clientID, nil, PaymentMethodCash, "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		items := []OrderItem{mustItem(t, "Algebra I", 1, 25.00)}
		_, err := NewOrder(clientID, items, PaymentMethod("BARTER"), "")
		assert.Error(t, err)
	})

	t.Run("rejects nil client", func(t *testing.T) {
		items := []OrderItem{mustItem(t, "Algebra I", 1, 25.00)}
		_, err := NewOrder(uuid.Nil, items, PaymentMethodCash, "")
		assert.Error(t, err)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"in progress to paid", StatusInProgress, StatusPaid, true},
		{"in progress to pending", StatusInProgress, StatusPending, true},
		{"in progress to cancelled", StatusInProgress, StatusCancelled, true},
		{"pending to paid", StatusPending, StatusPaid, true},
		{"pending back to in progress", StatusPending, StatusInProgress, true},
		{"paid is terminal", StatusPaid, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusInProgress, false},
		{"no self transition", StatusInProgress, StatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrder_MarkPaid(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		t.Helper()
		items := []OrderItem{mustItem(t, "Algebra I", 1, 25.00)}
		o, err := NewOrder(uuid.New(), items, PaymentMethodCash, "")
		require.NoError(t, err)
		return o
	}

	t.Run("transitions in progress order to paid", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.MarkPaid())
		assert.Equal(t, StatusPaid, o.Status)
	})

	t.Run("is idempotent once paid", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.MarkPaid())
		version := o.Version

		require.NoError(t, o.MarkPaid())
		assert.Equal(t, StatusPaid, o.Status)
		assert.Equal(t, version, o.Version)
	})

	t.Run("fails on a cancelled order", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel())
		assert.Error(t, o.MarkPaid())
	})
}

func TestNewPayment(t *testing.T) {
	amount := valueobject.NewMoneyUSDFromFloat(40.00)

	t.Run("creates a completed payment", func(t *testing.T) {
		p, err := NewPayment(uuid.New(), amount, PaymentMethodCash, PaymentTypeRegular, "", "first half")
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusCompleted, p.Status)
		assert.True(t, p.IsCompleted())
		assert.False(t, p.PaidAt.IsZero())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		zero := valueobject.ZeroUSD()
		_, err := NewPayment(uuid.New(), zero, PaymentMethodCash, PaymentTypeRegular, "", "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown payment type", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), amount, PaymentMethodCash, PaymentType("TIP"), "", "")
		assert.Error(t, err)
	})
}
