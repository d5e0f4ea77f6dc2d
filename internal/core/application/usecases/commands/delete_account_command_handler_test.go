package commands_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"prodtrack/internal/core/application/usecases/commands"
	"prodtrack/internal/core/domain/model/account"
	"prodtrack/internal/core/domain/model/audit"
	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/order"
	"prodtrack/internal/core/ports"
	"prodtrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeletionOrderRepository struct{ mock.Mock }

func (m *MockDeletionOrderRepository) Add(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockDeletionOrderRepository) Update(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockDeletionOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockDeletionOrderRepository) GetItem(_ context.Context, _ kernel.UUID) (*order.Item, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockDeletionOrderRepository) GetItemForUpdate(_ context.Context, _ kernel.UUID) (*order.Item, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockDeletionOrderRepository) UpdateItem(_ context.Context, _ *order.Item) error {
	return errors.New("not implemented in mock")
}
func (m *MockDeletionOrderRepository) AppendStatusEvent(_ context.Context, _ *order.StatusEvent) error {
	return errors.New("not implemented in mock")
}
func (m *MockDeletionOrderRepository) ListStatusEventsForItem(_ context.Context, _ kernel.UUID) ([]*order.StatusEvent, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockDeletionOrderRepository) ListForAccount(ctx context.Context, accountID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDeletionAccountRepository struct{ mock.Mock }

func (m *MockDeletionAccountRepository) Add(_ context.Context, _ *account.Account) error {
	return errors.New("not implemented in mock")
}
func (m *MockDeletionAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}
func (m *MockDeletionAccountRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDeletionAuditRepository struct{ mock.Mock }

func (m *MockDeletionAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockDeletionAuditRepository) History(_ context.Context, _, _ string) ([]*audit.Entry, error) {
	return nil, errors.New("not implemented in mock")
}

type MockDeletionUoW struct{ mock.Mock }

func (m *MockDeletionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDeletionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDeletionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDeletionUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockDeletionUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}
func (m *MockDeletionUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockDeletionUoWFactory struct{ mock.Mock }

func (m *MockDeletionUoWFactory) Create() commands.AccountUoW {
	args := m.Called()
	return args.Get(0).(commands.AccountUoW)
}

func deletionFixtureAccount(t *testing.T) *account.Account {
	t.Helper()
	acc, err := account.NewAccount(kernel.NewUUID(), "Acme Fabrication", "ops@acme.example", "+1-555-0147")
	require.NoError(t, err)
	return acc
}

func deletionFixtureOrders(t *testing.T, accountID kernel.UUID, count int) []*order.Order {
	t.Helper()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	orders := make([]*order.Order, 0, count)
	for i := 0; i < count; i++ {
		o, err := order.NewOrder(
			kernel.NewUUID(), accountID,
			fmt.Sprintf("PO-%04d", i+1), "Dana Reyes",
			base.Add(time.Duration(i)*24*time.Hour),
		)
		require.NoError(t, err)
		orders = append(orders, o)
	}
	return orders
}

func TestDeleteAccountCommandHandler_Handle_Deletes(t *testing.T) {
	ctx := t.Context()
	acc := deletionFixtureAccount(t)
	cmd, err := commands.NewDeleteAccountCommand(acc.ID(), testActor(t))
	require.NoError(t, err)

	orderRepo := new(MockDeletionOrderRepository)
	accountRepo := new(MockDeletionAccountRepository)
	auditRepo := new(MockDeletionAuditRepository)
	uow := new(MockDeletionUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", mock.Anything, acc.ID()).Return(acc, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("ListForAccount", mock.Anything, acc.ID()).Return([]*order.Order{}, nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Delete", mock.Anything, acc.ID()).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeletionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteAccountCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.Ok)
	assert.Empty(t, result.BlockingOrders)
	assert.Zero(t, result.OverflowCount)

	orderRepo.AssertExpectations(t)
	accountRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestDeleteAccountCommandHandler_Handle_BlockedByOrders(t *testing.T) {
	ctx := t.Context()
	acc := deletionFixtureAccount(t)
	orders := deletionFixtureOrders(t, acc.ID(), 5)
	cmd, err := commands.NewDeleteAccountCommand(acc.ID(), testActor(t))
	require.NoError(t, err)

	orderRepo := new(MockDeletionOrderRepository)
	accountRepo := new(MockDeletionAccountRepository)
	uow := new(MockDeletionUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", mock.Anything, acc.ID()).Return(acc, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("ListForAccount", mock.Anything, acc.ID()).Return(orders, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeletionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteAccountCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.False(t, result.Ok)
	require.Len(t, result.BlockingOrders, 3)
	assert.Equal(t, 2, result.OverflowCount)
	assert.Equal(t, "PO-0001", result.BlockingOrders[0].PurchaseOrder)
	assert.Equal(t, "PO-0002", result.BlockingOrders[1].PurchaseOrder)
	assert.Equal(t, "PO-0003", result.BlockingOrders[2].PurchaseOrder)

	accountRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteAccountCommandHandler_Handle_FewBlockingOrders_NoOverflow(t *testing.T) {
	ctx := t.Context()
	acc := deletionFixtureAccount(t)
	orders := deletionFixtureOrders(t, acc.ID(), 2)
	cmd, err := commands.NewDeleteAccountCommand(acc.ID(), testActor(t))
	require.NoError(t, err)

	orderRepo := new(MockDeletionOrderRepository)
	accountRepo := new(MockDeletionAccountRepository)
	uow := new(MockDeletionUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", mock.Anything, acc.ID()).Return(acc, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("ListForAccount", mock.Anything, acc.ID()).Return(orders, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeletionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteAccountCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.False(t, result.Ok)
	assert.Len(t, result.BlockingOrders, 2)
	assert.Zero(t, result.OverflowCount)
}

func TestDeleteAccountCommandHandler_Handle_AccountNotFound(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	cmd, err := commands.NewDeleteAccountCommand(accountID, testActor(t))
	require.NoError(t, err)

	accountRepo := new(MockDeletionAccountRepository)
	uow := new(MockDeletionUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", mock.Anything, accountID).Return(nil, errs.NewObjectNotFoundError("accountID", accountID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeletionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteAccountCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestDeleteAccountCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.DeleteAccountCommand

	factory := new(MockDeletionUoWFactory)
	h := commands.NewDeleteAccountCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}
