//go:build unit

package api_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"order-engine/internal/handler/api"
	"order-engine/internal/handler/middleware"
	resdto "order-engine/internal/handler/dto/response"
	"order-engine/internal/usecase/commands"
	"order-engine/tests/common/httptest"
	commandsmock "order-engine/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const webhookSecret = "test-secret"

type WebhookHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockPayments *commandsmock.MockPaymentCommands
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	handler := api.NewWebhookHandler(s.mockPayments)

	s.router.POST("/webhooks/payment", middleware.WebhookSignature(webhookSecret), handler.PaymentWebhook)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *WebhookHandlerTestSuite) payload(orderID uuid.UUID) []byte {
	body, err := json.Marshal(map[string]any{
		"event_id":    "evt-100",
		"order_id":    orderID,
		"status":      "APPROVED",
		"observed_at": time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC),
	})
	s.Require().NoError(err)
	return body
}

func (s *WebhookHandlerTestSuite) TestPaymentWebhook() {
	url := "/webhooks/payment"

	s.Run("success: applies the event and returns the ack", func() {
		orderID := uuid.New()
		body := s.payload(orderID)
		s.mockPayments.EXPECT().
			ApplyPaymentEvent(gomock.Any(), gomock.Any()).
			Return(&commands.Ack{OrderID: orderID, Applied: true}, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body,
			map[string]string{"X-Webhook-Signature": sign(body, webhookSecret)})
		s.Equal(http.StatusOK, rec.Code)

		var resp resdto.AckResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.True(resp.Applied)
	})

	s.Run("replayed delivery still returns 200", func() {
		orderID := uuid.New()
		body := s.payload(orderID)
		s.mockPayments.EXPECT().
			ApplyPaymentEvent(gomock.Any(), gomock.Any()).
			Return(&commands.Ack{OrderID: orderID, Replayed: true}, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body,
			map[string]string{"X-Webhook-Signature": sign(body, webhookSecret)})
		s.Equal(http.StatusOK, rec.Code)

		var resp resdto.AckResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.True(resp.Replayed)
		s.False(resp.Applied)
	})

	s.Run("conflict outcome still returns 200", func() {
		orderID := uuid.New()
		body := s.payload(orderID)
		s.mockPayments.EXPECT().
			ApplyPaymentEvent(gomock.Any(), gomock.Any()).
			Return(&commands.Ack{OrderID: orderID, Conflict: true}, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body,
			map[string]string{"X-Webhook-Signature": sign(body, webhookSecret)})
		s.Equal(http.StatusOK, rec.Code)

		var resp resdto.AckResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.True(resp.Conflict)
	})

	s.Run("missing signature returns 401", func() {
		body := s.payload(uuid.New())
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, nil)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("wrong signature returns 401", func() {
		body := s.payload(uuid.New())
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body,
			map[string]string{"X-Webhook-Signature": sign(body, "other-secret")})
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("missing identifiers returns 400", func() {
		body, err := json.Marshal(map[string]any{
			"event_id":    "evt-101",
			"status":      "APPROVED",
			"observed_at": time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC),
		})
		s.Require().NoError(err)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body,
			map[string]string{"X-Webhook-Signature": sign(body, webhookSecret)})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("invalid status enum returns 400", func() {
		body, err := json.Marshal(map[string]any{
			"event_id":    "evt-102",
			"order_id":    uuid.New(),
			"status":      "SETTLED",
			"observed_at": time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC),
		})
		s.Require().NoError(err)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body,
			map[string]string{"X-Webhook-Signature": sign(body, webhookSecret)})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
