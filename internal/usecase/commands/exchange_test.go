//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	domexchange "order-engine/internal/domain/exchange"
	"order-engine/internal/domain/order"
	"order-engine/internal/infra"
	"order-engine/internal/pkg/clock"
	"order-engine/internal/usecase/commands"
	"order-engine/tests/common/builder"
	"order-engine/tests/common/testutil"
	sharedmock "order-engine/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ExchangeCommandsTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	tx        *sharedmock.MockTx
	orders    *sharedmock.MockOrderRepository
	stock     *sharedmock.MockStockRepository
	requests  *sharedmock.MockExchangeRepository
	exchanges commands.ExchangeCommands
}

func (s *ExchangeCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.orders = sharedmock.NewMockOrderRepository(s.ctrl)
	s.stock = sharedmock.NewMockStockRepository(s.ctrl)
	s.requests = sharedmock.NewMockExchangeRepository(s.ctrl)

	s.tx.EXPECT().Orders().Return(s.orders).AnyTimes()
	s.tx.EXPECT().Stock().Return(s.stock).AnyTimes()
	s.tx.EXPECT().Exchanges().Return(s.requests).AnyTimes()
	s.tx.EXPECT().DB().Return(nil).AnyTimes()

	uow := &testutil.StubUnitOfWork{Tx: s.tx}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.exchanges = commands.NewExchangeCommands(uow, clk, logger)
}

func (s *ExchangeCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestExchangeCommandsSuite(t *testing.T) {
	suite.Run(t, new(ExchangeCommandsTestSuite))
}

func (s *ExchangeCommandsTestSuite) TestRequestExchange() {
	orderID := uuid.New()

	s.orders.EXPECT().
		UpdateStatus(gomock.Any(), gomock.Any(), orderID,
			[]order.Status{order.StatusPaid, order.StatusShipped}, order.StatusExchangeRequested).
		Return(nil)
	s.requests.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	view, err := s.exchanges.RequestExchange(context.Background(), orderID, "Wrong size delivered", nil)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), orderID, view.OrderID)
	assert.Equal(s.T(), "PENDING", view.Status)
}

func (s *ExchangeCommandsTestSuite) TestRequestExchangeOnIneligibleOrder() {
	orderID := uuid.New()

	s.orders.EXPECT().
		UpdateStatus(gomock.Any(), gomock.Any(), orderID, gomock.Any(), order.StatusExchangeRequested).
		Return(infra.NewRepoErr("no rows updated", infra.KindStaleState))

	_, err := s.exchanges.RequestExchange(context.Background(), orderID, "Wrong size delivered", nil)
	require.ErrorIs(s.T(), err, commands.ErrInvalidOrderState)
}

func (s *ExchangeCommandsTestSuite) TestRequestExchangeEmptyReason() {
	_, err := s.exchanges.RequestExchange(context.Background(), uuid.New(), "  ", nil)
	require.ErrorIs(s.T(), err, commands.ErrDomainValidation)
}

func (s *ExchangeCommandsTestSuite) TestResolveRejectedReturnsOrderToPaid() {
	o := builder.NewOrderBuilder().WithStatus(order.StatusExchangeRequested).BuildReconstructed()
	req := builder.NewExchangeBuilder().With(func(b *builder.ExchangeBuilder) {
		b.OrderID = o.ID()
	}).BuildReconstructed()
	notes := "does not qualify"

	s.requests.EXPECT().
		FindByID(gomock.Any(), gomock.Any(), req.ID()).
		Return(req, nil)
	s.orders.EXPECT().
		FindByID(gomock.Any(), gomock.Any(), o.ID()).
		Return(o, nil)
	s.orders.EXPECT().
		UpdateStatus(gomock.Any(), gomock.Any(), o.ID(),
			[]order.Status{order.StatusExchangeRequested}, order.StatusPaid).
		Return(nil)
	s.requests.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), req.ID(), domexchange.StatusRejected, &notes).
		Return(nil)

	view, err := s.exchanges.Resolve(context.Background(), commands.ResolveExchangeInput{
		RequestID:  req.ID(),
		Decision:   domexchange.DecisionRejected,
		AdminNotes: &notes,
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "REJECTED", view.Status)
}

func (s *ExchangeCommandsTestSuite) TestResolveApprovedRestocksAndReservesReplacement() {
	o := builder.NewOrderBuilder().WithStatus(order.StatusExchangeRequested).BuildReconstructed()
	returned := o.Items()[0]
	replacement := uuid.New()
	req := builder.NewExchangeBuilder().With(func(b *builder.ExchangeBuilder) {
		b.OrderID = o.ID()
	}).WithReplacement(replacement).BuildReconstructed()

	s.requests.EXPECT().
		FindByID(gomock.Any(), gomock.Any(), req.ID()).
		Return(req, nil)
	s.orders.EXPECT().
		FindByID(gomock.Any(), gomock.Any(), o.ID()).
		Return(o, nil)
	s.orders.EXPECT().
		UpdateStatus(gomock.Any(), gomock.Any(), o.ID(),
			[]order.Status{order.StatusExchangeRequested}, order.StatusExchanged).
		Return(nil)
	s.requests.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), req.ID(), domexchange.StatusCompleted, nil).
		Return(nil)
	s.stock.EXPECT().
		Release(gomock.Any(), gomock.Any(), returned.VariantID(), returned.Quantity()).
		Return(nil)
	s.stock.EXPECT().
		Reserve(gomock.Any(), gomock.Any(), replacement, returned.Quantity()).
		Return(nil)

	view, err := s.exchanges.Resolve(context.Background(), commands.ResolveExchangeInput{
		RequestID:         req.ID(),
		Decision:          domexchange.DecisionApproved,
		RestockReturned:   true,
		ReturnedVariantID: returned.VariantID(),
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "COMPLETED", view.Status)
}

func (s *ExchangeCommandsTestSuite) TestResolveAlreadyResolved() {
	req := builder.NewExchangeBuilder().WithStatus(domexchange.StatusCompleted).BuildReconstructed()

	s.requests.EXPECT().
		FindByID(gomock.Any(), gomock.Any(), req.ID()).
		Return(req, nil)

	_, err := s.exchanges.Resolve(context.Background(), commands.ResolveExchangeInput{
		RequestID: req.ID(),
		Decision:  domexchange.DecisionRejected,
	})
	require.ErrorIs(s.T(), err, commands.ErrExchangeAlreadyResolved)
}

func (s *ExchangeCommandsTestSuite) TestResolveUnknownRequest() {
	requestID := uuid.New()

	s.requests.EXPECT().
		FindByID(gomock.Any(), gomock.Any(), requestID).
		Return(nil, infra.NewRepoErr("not found", infra.KindNotFound))

	_, err := s.exchanges.Resolve(context.Background(), commands.ResolveExchangeInput{
		RequestID: requestID,
		Decision:  domexchange.DecisionApproved,
	})
	require.ErrorIs(s.T(), err, commands.ErrExchangeNotFound)
}

func (s *ExchangeCommandsTestSuite) TestResolveInvalidDecision() {
	_, err := s.exchanges.Resolve(context.Background(), commands.ResolveExchangeInput{
		RequestID: uuid.New(),
		Decision:  "MAYBE",
	})
	require.ErrorIs(s.T(), err, commands.ErrDomainValidation)
}
