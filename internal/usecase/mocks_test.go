package usecase_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"picklestore/internal/domain/model"
	"picklestore/internal/payment"
	repo "picklestore/internal/repository"
)

type PickleRepoMock struct{ mock.Mock }

func (m *PickleRepoMock) List(ctx context.Context, q repo.PickleListQuery) ([]repo.PickleWithRating, error) {
	args := m.Called(ctx, q)
	rows, _ := args.Get(0).([]repo.PickleWithRating)
	return rows, args.Error(1)
}

func (m *PickleRepoMock) FindByID(ctx context.Context, id int64) (model.Pickle, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Pickle)
	return p, args.Error(1)
}

func (m *PickleRepoMock) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]string)
	return cats, args.Error(1)
}

func (m *PickleRepoMock) Create(ctx context.Context, p model.Pickle) (model.Pickle, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Pickle)
	return created, args.Error(1)
}

func (m *PickleRepoMock) Update(ctx context.Context, p model.Pickle) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PickleRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PickleRepoMock) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PickleRepoMock) CountLowStock(ctx context.Context, threshold int64) (int64, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).(int64), args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) SetStockWithAdjustment(ctx context.Context, adminUserID int64, pickleID int64, newStock int64, reason string) error {
	args := m.Called(ctx, adminUserID, pickleID, newStock, reason)
	return args.Error(0)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, pickleID int64, qty int64) (bool, error) {
	args := m.Called(ctx, pickleID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, pickleID int64, qty int64) error {
	args := m.Called(ctx, pickleID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]repo.OrderWithItemCount, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]repo.OrderWithItemCount)
	return rows, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]repo.OrderWithItemCount, int64, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]repo.OrderWithItemCount)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Stats(ctx context.Context) (repo.OrderStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(repo.OrderStats)
	return s, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) DeleteByOrderID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Clear(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) UpsertAdd(ctx context.Context, cartID int64, pickleID int64, addQty int64, unitPriceSnapshot decimal.Decimal) error {
	args := m.Called(ctx, cartID, pickleID, addQty, unitPriceSnapshot)
	return args.Error(0)
}

func (m *CartItemRepoMock) SetQuantity(ctx context.Context, cartID int64, pickleID int64, qty int64) error {
	args := m.Called(ctx, cartID, pickleID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByPickle(ctx context.Context, cartID int64, pickleID int64) error {
	args := m.Called(ctx, cartID, pickleID)
	return args.Error(0)
}

func (m *CartItemRepoMock) ReplaceAll(ctx context.Context, cartID int64, items []model.CartItem) error {
	args := m.Called(ctx, cartID, items)
	return args.Error(0)
}

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) Create(ctx context.Context, review model.Review) (model.Review, error) {
	args := m.Called(ctx, review)
	r, _ := args.Get(0).(model.Review)
	return r, args.Error(1)
}

func (m *ReviewRepoMock) ExistsByUserAndPickle(ctx context.Context, userID int64, pickleID int64) (bool, error) {
	args := m.Called(ctx, userID, pickleID)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewRepoMock) ListByPickleID(ctx context.Context, pickleID int64) ([]repo.ReviewWithAuthor, error) {
	args := m.Called(ctx, pickleID)
	rows, _ := args.Get(0).([]repo.ReviewWithAuthor)
	return rows, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserRepoMock) UpdateRole(ctx context.Context, userID int64, role model.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *UserRepoMock) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UserRepoMock) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreateOrder(ctx context.Context, amountMinor int64, currency string, receipt string) (payment.GatewayOrder, error) {
	args := m.Called(ctx, amountMinor, currency, receipt)
	o, _ := args.Get(0).(payment.GatewayOrder)
	return o, args.Error(1)
}

func (m *GatewayMock) VerifySignature(gatewayOrderID string, paymentID string, signature string) bool {
	args := m.Called(gatewayOrderID, paymentID, signature)
	return args.Bool(0)
}

func (m *GatewayMock) KeyID() string {
	args := m.Called()
	return args.String(0)
}

// txReposStub bundles the repo mocks behind the transaction boundary.
type txReposStub struct {
	pickles    *PickleRepoMock
	inventory  *InventoryRepoMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	carts      *CartRepoMock
	cartItems  *CartItemRepoMock
}

func newTxReposStub() *txReposStub {
	return &txReposStub{
		pickles:    new(PickleRepoMock),
		inventory:  new(InventoryRepoMock),
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		carts:      new(CartRepoMock),
		cartItems:  new(CartItemRepoMock),
	}
}

func (s *txReposStub) Pickles() repo.PickleRepository      { return s.pickles }
func (s *txReposStub) Inventory() repo.InventoryRepository { return s.inventory }
func (s *txReposStub) Orders() repo.OrderRepository        { return s.orders }
func (s *txReposStub) OrderItems() repo.OrderItemRepository {
	return s.orderItems
}
func (s *txReposStub) Carts() repo.CartRepository         { return s.carts }
func (s *txReposStub) CartItems() repo.CartItemRepository { return s.cartItems }

// txManagerStub runs the callback directly; rollback behavior is covered
// by the integration tests against a real database.
type txManagerStub struct {
	repos *txReposStub
}

func (s *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(s.repos)
}
