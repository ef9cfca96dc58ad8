package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"amorlias/internal/domain"
	"amorlias/internal/service"
	"amorlias/mocks"
)

func newOrderService() (service.OrderService, *mocks.MockOrderRepo, *mocks.MockNotificationRepo) {
	repo := new(mocks.MockOrderRepo)
	notes := new(mocks.MockNotificationRepo)
	svc := service.NewOrderService(repo, notes, settingsWith(sellerSettings()), nopLog)
	return svc, repo, notes
}

func TestParseStatusFilter(t *testing.T) {
	for _, in := range []string{"", "all", " ALL "} {
		s, err := service.ParseStatusFilter(in)
		require.NoError(t, err)
		assert.Empty(t, s)
	}

	s, err := service.ParseStatusFilter("Shipped")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, s)

	_, err = service.ParseStatusFilter("lost")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestOrderService_ListByUser_FiltersByOwner(t *testing.T) {
	svc, repo, _ := newOrderService()
	userID := uuid.New()

	repo.On("List", anyCtx, domain.OrderFilter{UserID: &userID, Status: domain.OrderStatusPending}, 0, 20).
		Return([]domain.Order{{OrderNumber: "ORD-1"}}, 1, nil)

	orders, total, err := svc.ListByUser(context.Background(), userID, "pending", 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, orders, 1)
}

func TestOrderService_GetForUser_OtherUsersOrder(t *testing.T) {
	svc, repo, _ := newOrderService()
	order := shippableOrder(domain.OrderStatusPending)
	repo.On("GetByID", anyCtx, order.ID).Return(order, nil)

	_, err := svc.GetForUser(context.Background(), uuid.New(), order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.GetForUser(context.Background(), *order.UserID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestOrderService_UpdateShipment_ShipsAndNotifies(t *testing.T) {
	svc, repo, notes := newOrderService()
	order := shippableOrder(domain.OrderStatusProcessing)

	repo.On("GetByID", anyCtx, order.ID).Return(order, nil)
	repo.On("UpdateShipment", anyCtx, order.ID, "Shadowfax", "SFX9", domain.OrderStatusProcessing, domain.OrderStatusShipped).Return(nil)
	notes.On("Create", anyCtx, mock.MatchedBy(func(n *domain.Notification) bool {
		var data map[string]string
		_ = n.Data.Decode(&data)
		return n.Type == domain.NotificationOrderShipped &&
			n.UserID == *order.UserID &&
			data["tracking_number"] == "SFX9"
	})).Return(nil)

	got, err := svc.UpdateShipment(context.Background(), order.ID, service.UpdateShipmentInput{
		Courier: " Shadowfax ", TrackingNumber: "SFX9",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, got.Status)
	assert.Equal(t, "Shadowfax", got.Courier)
	notes.AssertExpectations(t)
}

func TestOrderService_UpdateShipment_ReshipDoesNotNotify(t *testing.T) {
	svc, repo, notes := newOrderService()
	order := shippableOrder(domain.OrderStatusShipped)

	repo.On("GetByID", anyCtx, order.ID).Return(order, nil)
	repo.On("UpdateShipment", anyCtx, order.ID, "Delhivery", "DL999", domain.OrderStatusShipped, domain.OrderStatusShipped).Return(nil)

	_, err := svc.UpdateShipment(context.Background(), order.ID, service.UpdateShipmentInput{
		Courier: "Delhivery", TrackingNumber: "DL999",
	})

	require.NoError(t, err)
	notes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateShipment_RejectsClosedOrders(t *testing.T) {
	svc, repo, _ := newOrderService()
	order := shippableOrder(domain.OrderStatusCancelled)
	repo.On("GetByID", anyCtx, order.ID).Return(order, nil)

	_, err := svc.UpdateShipment(context.Background(), order.ID, service.UpdateShipmentInput{
		Courier: "Delhivery", TrackingNumber: "DL1",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	repo.AssertNotCalled(t, "UpdateShipment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_UpdateShipment_CancelledMeanwhile(t *testing.T) {
	svc, repo, notes := newOrderService()
	order := shippableOrder(domain.OrderStatusProcessing)
	repo.On("GetByID", anyCtx, order.ID).Return(order, nil)
	repo.On("UpdateShipment", anyCtx, order.ID, "Valmo", "VL7", domain.OrderStatusProcessing, domain.OrderStatusShipped).
		Return(domain.ErrInvalidTransition)

	got, err := svc.UpdateShipment(context.Background(), order.ID, service.UpdateShipmentInput{
		Courier: "Valmo", TrackingNumber: "VL7",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Nil(t, got)
	notes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.OrderStatus
		to      domain.OrderStatus
		wantErr error
	}{
		{"pending to processing", domain.OrderStatusPending, domain.OrderStatusProcessing, nil},
		{"pending to cancelled", domain.OrderStatusPending, domain.OrderStatusCancelled, nil},
		{"processing to shipped", domain.OrderStatusProcessing, domain.OrderStatusShipped, nil},
		{"shipped to delivered", domain.OrderStatusShipped, domain.OrderStatusDelivered, nil},
		{"delivered to pending", domain.OrderStatusDelivered, domain.OrderStatusPending, domain.ErrInvalidTransition},
		{"shipped to cancelled", domain.OrderStatusShipped, domain.OrderStatusCancelled, domain.ErrInvalidTransition},
		{"unknown status", domain.OrderStatusPending, domain.OrderStatus("lost"), domain.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, notes := newOrderService()
			order := shippableOrder(tt.from)
			repo.On("GetByID", anyCtx, order.ID).Return(order, nil)
			repo.On("UpdateStatus", anyCtx, order.ID, tt.from, tt.to).Return(nil)
			notes.On("Create", anyCtx, mock.Anything).Return(nil)

			got, err := svc.UpdateStatus(context.Background(), order.ID, service.UpdateStatusInput{Status: tt.to})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Status)
			if tt.to == domain.OrderStatusDelivered {
				notes.AssertNumberOfCalls(t, "Create", 1)
			} else {
				notes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestOrderService_UpdateStatus_LostRace(t *testing.T) {
	svc, repo, _ := newOrderService()
	order := shippableOrder(domain.OrderStatusPending)
	repo.On("GetByID", anyCtx, order.ID).Return(order, nil)
	repo.On("UpdateStatus", anyCtx, order.ID, domain.OrderStatusPending, domain.OrderStatusProcessing).
		Return(domain.ErrInvalidTransition)

	_, err := svc.UpdateStatus(context.Background(), order.ID, service.UpdateStatusInput{Status: domain.OrderStatusProcessing})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestOrderService_ExportGSTRegister(t *testing.T) {
	svc, repo, _ := newOrderService()
	order := shippableOrder(domain.OrderStatusDelivered)
	repo.On("ListAll", anyCtx, domain.OrderFilter{}).Return([]domain.Order{*order}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportGSTRegister(context.Background(), domain.OrderFilter{}, &buf))

	out := strings.TrimPrefix(buf.String(), "\xEF\xBB\xBF")
	assert.NotEqual(t, buf.String(), out, "output starts with a BOM")

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Order Number", rows[0][0])
	assert.Equal(t, order.OrderNumber, rows[1][0])
	assert.Equal(t, "Inter-state", rows[1][6])
	assert.Equal(t, "1000.00", rows[1][11])
	assert.Equal(t, "180.00", rows[1][14])
}
