//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"order-engine/internal/handler/api"
	"order-engine/internal/handler/middleware"
	resdto "order-engine/internal/handler/dto/response"
	"order-engine/internal/usecase/commands"
	"order-engine/internal/usecase/queries"
	"order-engine/tests/common/builder"
	"order-engine/tests/common/httptest"
	"order-engine/tests/common/testutil"
	commandsmock "order-engine/tests/mock/commands"
	queriesmock "order-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCheckout *commandsmock.MockCheckoutCommands
	mockPayments *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.OrderHandler
	userID       uuid.UUID
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCheckout = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCheckout, s.mockPayments, s.mockQueries)
	s.userID = uuid.New()

	s.router.POST("/checkout", middleware.RequireUserID(), s.handler.Checkout)
	s.router.GET("/orders", middleware.RequireUserID(), s.handler.ListOrders)
	s.router.GET("/orders/:id", s.handler.GetOrder)
	s.router.POST("/orders/:id/verify-payment", s.handler.VerifyPayment)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

type orderTestCase struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCheckout
// ================================================================================

func (s *OrderHandlerTestSuite) TestCheckout() {
	url := "/checkout"
	reqBody := builder.NewOrderBuilder().BuildCheckoutRequestDTO()

	s.Run("success: returns 201 Created with charge payload", func() {
		view := builder.NewOrderBuilder().BuildView()
		result := &commands.PlaceOrderResult{
			Order:  view,
			Charge: &commands.ChargeResult{PaymentReference: "pay_001", PixQRCode: "qr-data"},
		}
		s.mockCheckout.EXPECT().
			PlaceOrder(gomock.Any(), s.userID, reqBody.AddressID, gomock.Any(), gomock.Any()).
			Return(result, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.userID.String())
		s.Equal(http.StatusCreated, rec.Code)

		var resp resdto.CheckoutResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Equal(view.ID, resp.Order.ID)
		s.Require().NotNil(resp.Charge)
		s.Equal("qr-data", resp.Charge.PixQRCode)
	})

	s.Run("missing identity header returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("validation boundary cases", func() {
		cases := []orderTestCase{
			{name: "missing address_id", mutate: testutil.Field("address_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing items", mutate: testutil.Field("items", nil), expectCode: http.StatusBadRequest},
			{name: "empty items", mutate: testutil.Field("items", []any{}), expectCode: http.StatusBadRequest},
			{name: "invalid payment method", mutate: testutil.Field("payment_method", "CASH"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, s.userID.String())
				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})

	s.Run("out of stock returns 409", func() {
		s.mockCheckout.EXPECT().
			PlaceOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrOutOfStock)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.userID.String())
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("unknown variant returns 404", func() {
		s.mockCheckout.EXPECT().
			PlaceOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrVariantNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.userID.String())
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("domain validation returns 422", func() {
		s.mockCheckout.EXPECT().
			PlaceOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrDomainValidation)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.userID.String())
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

// ================================================================================
// TestGetOrder
// ================================================================================

func (s *OrderHandlerTestSuite) TestGetOrder() {
	s.Run("success: returns 200 with order view", func() {
		view := builder.NewOrderBuilder().BuildView()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), view.ID).
			Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+view.ID.String(), nil, "")
		s.Equal(http.StatusOK, rec.Code)

		var resp resdto.OrderResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Equal(view.ID, resp.ID)
		s.Len(resp.Items, len(view.Items))
	})

	s.Run("invalid id format returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/not-a-uuid", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown order returns 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), id).
			Return(nil, queries.ErrOrderNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+id.String(), nil, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

// ================================================================================
// TestListOrders
// ================================================================================

func (s *OrderHandlerTestSuite) TestListOrders() {
	s.Run("success: returns the caller's orders", func() {
		items := []*queries.OrderListItem{
			{ID: uuid.New(), Status: "PAID", PaymentMethod: "PIX", TotalCents: 11480, ItemCount: 1},
		}
		s.mockQueries.EXPECT().
			ListByUser(gomock.Any(), s.userID).
			Return(items, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, s.userID.String())
		s.Equal(http.StatusOK, rec.Code)

		var resp []*resdto.OrderListResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Len(resp, 1)
		s.Equal(items[0].ID, resp[0].ID)
	})

	s.Run("invalid identity header returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, "not-a-uuid")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestVerifyPayment
// ================================================================================

func (s *OrderHandlerTestSuite) TestVerifyPayment() {
	s.Run("success: returns the reconciliation ack", func() {
		id := uuid.New()
		s.mockPayments.EXPECT().
			VerifyNow(gomock.Any(), id).
			Return(&commands.Ack{OrderID: id, Applied: true}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/"+id.String()+"/verify-payment", nil, "")
		s.Equal(http.StatusOK, rec.Code)

		var resp resdto.AckResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.True(resp.Applied)
		s.Equal(id, resp.OrderID)
	})

	s.Run("no payment reference returns 409", func() {
		id := uuid.New()
		s.mockPayments.EXPECT().
			VerifyNow(gomock.Any(), id).
			Return(nil, commands.ErrNoPaymentReference)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/"+id.String()+"/verify-payment", nil, "")
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("unknown order returns 404", func() {
		id := uuid.New()
		s.mockPayments.EXPECT().
			VerifyNow(gomock.Any(), id).
			Return(nil, commands.ErrOrderNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/"+id.String()+"/verify-payment", nil, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}
