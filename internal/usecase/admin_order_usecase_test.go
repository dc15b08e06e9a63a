package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"picklestore/internal/domain/model"
	repo "picklestore/internal/repository"
	"picklestore/internal/usecase"
)

func newAdminOrderUsecase() (*usecase.AdminOrderUsecase, *txReposStub, *AuditRepoMock) {
	repos := newTxReposStub()
	audit := new(AuditRepoMock)
	return usecase.NewAdminOrderUsecase(&txManagerStub{repos: repos}, audit), repos, audit
}

func Test_UpdateStatus_ForwardTransition(t *testing.T) {
	uc, repos, audit := newAdminOrderUsecase()

	repos.orders.On("FindByID", mock.Anything, int64(4)).
		Return(model.Order{ID: 4, Status: model.OrderStatusPending}, nil)
	repos.orders.On("UpdateStatus", mock.Anything, int64(4), model.OrderStatusProcessing).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateOrderStatus && l.ResourceID == 4
	})).Return(nil)

	err := uc.UpdateStatus(context.Background(), 7, 4, usecase.AdminUpdateOrderStatusInput{Status: "processing"})

	assert.NoError(t, err)
	repos.orders.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func Test_UpdateStatus_BackwardTransitionRejected(t *testing.T) {
	uc, repos, _ := newAdminOrderUsecase()

	repos.orders.On("FindByID", mock.Anything, int64(4)).
		Return(model.Order{ID: 4, Status: model.OrderStatusShipped}, nil)

	err := uc.UpdateStatus(context.Background(), 7, 4, usecase.AdminUpdateOrderStatusInput{Status: "pending"})

	assertHTTPStatus(t, err, http.StatusBadRequest)
	repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func Test_UpdateStatus_TerminalOrderRejected(t *testing.T) {
	uc, repos, _ := newAdminOrderUsecase()

	repos.orders.On("FindByID", mock.Anything, int64(4)).
		Return(model.Order{ID: 4, Status: model.OrderStatusDelivered}, nil)

	err := uc.UpdateStatus(context.Background(), 7, 4, usecase.AdminUpdateOrderStatusInput{Status: "cancelled"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func Test_UpdateStatus_CancelRestocksItems(t *testing.T) {
	uc, repos, audit := newAdminOrderUsecase()

	repos.orders.On("FindByID", mock.Anything, int64(4)).
		Return(model.Order{ID: 4, Status: model.OrderStatusProcessing}, nil)
	repos.orderItems.On("ListByOrderID", mock.Anything, int64(4)).Return([]model.OrderItem{
		{OrderID: 4, PickleID: 1, Quantity: 2, UnitPriceSnapshot: decimal.NewFromInt(250)},
		{OrderID: 4, PickleID: 2, Quantity: 1, UnitPriceSnapshot: decimal.NewFromInt(150)},
	}, nil)
	repos.inventory.On("IncreaseStock", mock.Anything, int64(1), int64(2)).Return(nil).Once()
	repos.inventory.On("IncreaseStock", mock.Anything, int64(2), int64(1)).Return(nil).Once()
	repos.inventory.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(adj model.InventoryAdjustment) bool {
		return adj.PickleID == 1 && adj.AdminUserID == 7 && adj.Delta == 2 && adj.Reason == "order cancelled"
	})).Return(nil).Once()
	repos.inventory.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(adj model.InventoryAdjustment) bool {
		return adj.PickleID == 2 && adj.AdminUserID == 7 && adj.Delta == 1 && adj.Reason == "order cancelled"
	})).Return(nil).Once()
	repos.orders.On("UpdateStatus", mock.Anything, int64(4), model.OrderStatusCancelled).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := uc.UpdateStatus(context.Background(), 7, 4, usecase.AdminUpdateOrderStatusInput{Status: "cancelled"})

	assert.NoError(t, err)
	repos.inventory.AssertExpectations(t)
}

func Test_UpdateStatus_SameStatusIsNoop(t *testing.T) {
	uc, repos, audit := newAdminOrderUsecase()

	repos.orders.On("FindByID", mock.Anything, int64(4)).
		Return(model.Order{ID: 4, Status: model.OrderStatusShipped}, nil)

	err := uc.UpdateStatus(context.Background(), 7, 4, usecase.AdminUpdateOrderStatusInput{Status: "shipped"})

	assert.NoError(t, err)
	repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func Test_UpdateStatus_UnknownStatus(t *testing.T) {
	uc, _, _ := newAdminOrderUsecase()

	err := uc.UpdateStatus(context.Background(), 7, 4, usecase.AdminUpdateOrderStatusInput{Status: "teleported"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func Test_AdminList_InvalidStatusFilter(t *testing.T) {
	uc, _, _ := newAdminOrderUsecase()

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Status: "bogus"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func Test_AdminDelete_RemovesItemsToo(t *testing.T) {
	uc, repos, audit := newAdminOrderUsecase()

	repos.orders.On("FindByID", mock.Anything, int64(4)).
		Return(model.Order{ID: 4, Status: model.OrderStatusCancelled}, nil)
	repos.orderItems.On("DeleteByOrderID", mock.Anything, int64(4)).Return(nil)
	repos.orders.On("Delete", mock.Anything, int64(4)).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionDeleteOrder
	})).Return(nil)

	err := uc.Delete(context.Background(), 7, 4)

	assert.NoError(t, err)
	repos.orderItems.AssertExpectations(t)
	repos.orders.AssertExpectations(t)
}
