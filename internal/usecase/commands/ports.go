package commands

import (
	"context"
	"time"

	"order-engine/internal/domain/order"

	"github.com/google/uuid"
)

// ReportedStatus is the gateway's view of a charge, normalized from whatever
// the provider sends.
type ReportedStatus string

const (
	ReportedApproved ReportedStatus = "APPROVED"
	ReportedRejected ReportedStatus = "REJECTED"
	ReportedPending  ReportedStatus = "PENDING"
	ReportedUnknown  ReportedStatus = "UNKNOWN"
)

func (s ReportedStatus) IsValid() bool {
	switch s {
	case ReportedApproved, ReportedRejected, ReportedPending, ReportedUnknown:
		return true
	default:
		return false
	}
}

// PaymentEvent is an at-least-once, possibly out-of-order gateway
// notification. EventID is provider-assigned and used for dedup. Either
// OrderID or PaymentReference identifies the order.
type PaymentEvent struct {
	EventID          string
	OrderID          uuid.UUID
	PaymentReference string
	ReportedStatus   ReportedStatus
	ObservedAt       time.Time
}

// ChargeResult is the gateway payload handed back to the checkout caller.
// Fields are method-specific: PIX gets a QR code, card a redirect, boleto a
// payable line.
type ChargeResult struct {
	PaymentReference string
	PixQRCode        string
	PixQRCodeImage   string // base64 PNG
	CardRedirectURL  string
	BoletoLine       string
	BoletoURL        string

	// Synchronous methods (card) may report a final status in the same
	// request cycle; the checkout flow feeds it through the reconciler.
	EventID        string
	ReportedStatus ReportedStatus
	ObservedAt     time.Time
}

type GatewayStatus struct {
	EventID        string
	ReportedStatus ReportedStatus
	ObservedAt     time.Time
}

type PaymentGateway interface {
	CreateCharge(ctx context.Context, o *order.Order) (*ChargeResult, error)
	FetchStatus(ctx context.Context, paymentReference string) (*GatewayStatus, error)
}

// FreightQuoter prices shipping for a destination and item set. The real
// policy lives with an external collaborator; the engine only needs the
// priced value.
type FreightQuoter interface {
	QuoteCents(ctx context.Context, addressID uuid.UUID, lines []order.Line) (int64, error)
}

type FlatRateFreightQuoter struct {
	FlatCents int64
}

func NewFlatRateFreightQuoter(flatCents int64) *FlatRateFreightQuoter {
	return &FlatRateFreightQuoter{FlatCents: flatCents}
}

func (q *FlatRateFreightQuoter) QuoteCents(_ context.Context, _ uuid.UUID, _ []order.Line) (int64, error) {
	return q.FlatCents, nil
}
