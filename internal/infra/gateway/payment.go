package gateway

import (
	"context"
	"fmt"
	"time"

	"order-engine/internal/domain/order"
	"order-engine/internal/pkg/config"
	"order-engine/internal/pkg/errs"
	"order-engine/internal/usecase/commands"

	"github.com/go-resty/resty/v2"
)

var (
	ErrGatewayUnavailable = errs.New("payment gateway unavailable")
	ErrChargeRejected     = errs.New("payment gateway rejected charge creation")
)

// RestyPaymentGateway talks to the external payment provider. The provider
// owns authorization; this client only creates charges and reads status.
type RestyPaymentGateway struct {
	client *resty.Client
}

func NewRestyPaymentGateway(cfg config.PaymentConfig) *RestyPaymentGateway {
	client := resty.New().
		SetBaseURL(cfg.GatewayBaseURL).
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)

	return &RestyPaymentGateway{client: client}
}

type createChargeRequest struct {
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
}

type chargeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Pix    *struct {
		QRCode       string `json:"qr_code"`
		QRCodeBase64 string `json:"qr_code_base64"`
	} `json:"pix,omitempty"`
	Card *struct {
		RedirectURL string `json:"redirect_url"`
	} `json:"card,omitempty"`
	Boleto *struct {
		Line string `json:"line"`
		URL  string `json:"url"`
	} `json:"boleto,omitempty"`
	EventID   string    `json:"event_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *RestyPaymentGateway) CreateCharge(ctx context.Context, o *order.Order) (*commands.ChargeResult, error) {
	var body chargeResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(createChargeRequest{
			OrderID:     o.ID().String(),
			AmountCents: o.TotalCents(),
			Method:      o.PaymentMethod().String(),
		}).
		SetResult(&body).
		Post("/charges")
	if err != nil {
		return nil, errs.Mark(err, ErrGatewayUnavailable)
	}
	if resp.IsError() {
		return nil, errs.Mark(
			errs.New(fmt.Sprintf("charge creation returned %d", resp.StatusCode())),
			ErrChargeRejected,
		)
	}

	result := &commands.ChargeResult{
		PaymentReference: body.ID,
		EventID:          body.EventID,
		ReportedStatus:   normalizeStatus(body.Status),
		ObservedAt:       body.UpdatedAt,
	}
	if body.Pix != nil {
		result.PixQRCode = body.Pix.QRCode
		result.PixQRCodeImage = body.Pix.QRCodeBase64
	}
	if body.Card != nil {
		result.CardRedirectURL = body.Card.RedirectURL
	}
	if body.Boleto != nil {
		result.BoletoLine = body.Boleto.Line
		result.BoletoURL = body.Boleto.URL
	}
	return result, nil
}

func (g *RestyPaymentGateway) FetchStatus(ctx context.Context, paymentReference string) (*commands.GatewayStatus, error) {
	var body chargeResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/charges/" + paymentReference)
	if err != nil {
		return nil, errs.Mark(err, ErrGatewayUnavailable)
	}
	if resp.IsError() {
		return nil, errs.Mark(
			errs.New(fmt.Sprintf("status fetch returned %d", resp.StatusCode())),
			ErrGatewayUnavailable,
		)
	}

	status := normalizeStatus(body.Status)
	eventID := body.EventID
	if eventID == "" {
		// Polls don't always carry a provider event id. A deterministic
		// synthetic id keeps repeated polls of an unchanged status idempotent.
		eventID = fmt.Sprintf("poll:%s:%s", paymentReference, status)
	}

	observedAt := body.UpdatedAt
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	return &commands.GatewayStatus{
		EventID:        eventID,
		ReportedStatus: status,
		ObservedAt:     observedAt,
	}, nil
}

func normalizeStatus(raw string) commands.ReportedStatus {
	switch raw {
	case "approved", "paid", "APPROVED":
		return commands.ReportedApproved
	case "rejected", "refused", "REJECTED":
		return commands.ReportedRejected
	case "pending", "in_process", "PENDING":
		return commands.ReportedPending
	default:
		return commands.ReportedUnknown
	}
}
