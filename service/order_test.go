package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b-himadri/bakery-backend-api/model"
	"github.com/b-himadri/bakery-backend-api/service"
)

func seedOrder(t *testing.T, m *memStores, userID uint, status string) *model.Order {
	t.Helper()
	order := &model.Order{
		UserID: userID,
		Items: model.OrderItems{
			{ProductID: 1, Name: "Sourdough Loaf", Price: 6.5, Quantity: 2},
		},
		TotalAmount:   13,
		PaymentMethod: model.PaymentCOD,
		Status:        status,
	}
	require.NoError(t, m.Orders().Insert(context.Background(), order))
	return order
}

func TestOrderService(t *testing.T) {
	ctx := context.Background()

	t.Run("GetScopedToOwner", func(t *testing.T) {
		m := newMemStores()
		os := service.NewOrderService(m, nil, false)
		order := seedOrder(t, m, testUserID, model.StatusPending)

		got, err := os.Get(ctx, order.ID, testUserID, false)
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)

		_, err = os.Get(ctx, order.ID, 99, false)
		var notFound *service.NotFoundError
		require.ErrorAs(t, err, &notFound)

		got, err = os.Get(ctx, order.ID, 99, true)
		require.NoError(t, err, "admins may read any order")
		assert.Equal(t, order.ID, got.ID)
	})

	t.Run("UpdateStatusRejectsUnknownValue", func(t *testing.T) {
		m := newMemStores()
		os := service.NewOrderService(m, nil, false)
		order := seedOrder(t, m, testUserID, model.StatusPending)

		_, err := os.UpdateStatus(ctx, order.ID, "packed")

		var validation *service.ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("UpdateStatusMissingOrder", func(t *testing.T) {
		m := newMemStores()
		os := service.NewOrderService(m, nil, false)

		_, err := os.UpdateStatus(ctx, 42, model.StatusConfirmed)

		var notFound *service.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("PermissiveModeAllowsAnyTransition", func(t *testing.T) {
		m := newMemStores()
		events := &recordingPublisher{}
		os := service.NewOrderService(m, events, false)
		order := seedOrder(t, m, testUserID, model.StatusDelivered)

		// historical behavior: even delivered -> pending is accepted
		updated, err := os.UpdateStatus(ctx, order.ID, model.StatusPending)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, updated.Status)
		assert.Equal(t, [][2]string{{model.StatusDelivered, model.StatusPending}}, events.statusUpdates)
	})

	t.Run("StrictModeFollowsTransitionTable", func(t *testing.T) {
		m := newMemStores()
		os := service.NewOrderService(m, nil, true)
		order := seedOrder(t, m, testUserID, model.StatusPending)

		for _, next := range []string{model.StatusConfirmed, model.StatusShipped, model.StatusDelivered} {
			updated, err := os.UpdateStatus(ctx, order.ID, next)
			require.NoError(t, err)
			assert.Equal(t, next, updated.Status)
		}
	})

	t.Run("StrictModeRejectsIllegalTransition", func(t *testing.T) {
		m := newMemStores()
		os := service.NewOrderService(m, nil, true)
		order := seedOrder(t, m, testUserID, model.StatusDelivered)

		_, err := os.UpdateStatus(ctx, order.ID, model.StatusPending)

		var conflict *service.ConflictError
		require.ErrorAs(t, err, &conflict)

		got, _ := m.Orders().GetByID(ctx, order.ID)
		assert.Equal(t, model.StatusDelivered, got.Status)
	})

	t.Run("StrictModeCancelBeforeShipping", func(t *testing.T) {
		m := newMemStores()
		os := service.NewOrderService(m, nil, true)

		for _, from := range []string{model.StatusPending, model.StatusPendingPayment, model.StatusConfirmed} {
			order := seedOrder(t, m, testUserID, from)
			updated, err := os.UpdateStatus(ctx, order.ID, model.StatusCancelled)
			require.NoError(t, err, "cancel must be reachable from %s", from)
			assert.Equal(t, model.StatusCancelled, updated.Status)
		}

		shipped := seedOrder(t, m, testUserID, model.StatusShipped)
		_, err := os.UpdateStatus(ctx, shipped.ID, model.StatusCancelled)
		var conflict *service.ConflictError
		require.ErrorAs(t, err, &conflict)
	})

	t.Run("ListForUserNewestFirst", func(t *testing.T) {
		m := newMemStores()
		os := service.NewOrderService(m, nil, false)
		first := seedOrder(t, m, testUserID, model.StatusPending)
		second := seedOrder(t, m, testUserID, model.StatusPending)
		seedOrder(t, m, 99, model.StatusPending)

		orders, err := os.ListForUser(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, second.ID, orders[0].ID)
		assert.Equal(t, first.ID, orders[1].ID)

		all, err := os.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}
