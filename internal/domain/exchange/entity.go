package exchange

import (
	"errors"
	"strings"
	"time"

	"order-engine/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrEmptyReason     = errors.New("exchange reason cannot be empty")
	ErrReasonTooLong   = errors.New("exchange reason exceeds maximum length")
	ErrAlreadyResolved = errors.New("exchange request is already resolved")
	ErrInvalidDecision = errors.New("invalid exchange decision")
)

const MaxReasonLength = 1000

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) IsResolved() bool {
	return s == StatusRejected || s == StatusCompleted
}

type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

func (d Decision) IsValid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

type Request struct {
	id                   uuid.UUID
	orderID              uuid.UUID
	reason               string
	status               Status
	adminNotes           *string
	replacementVariantID *uuid.UUID
	createdAt            time.Time
	updatedAt            time.Time
}

func NewRequest(clk clock.Clock, orderID uuid.UUID, reason string, replacementVariantID *uuid.UUID) (*Request, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}
	if len(reason) > MaxReasonLength {
		return nil, ErrReasonTooLong
	}

	now := clk.Now()
	return &Request{
		id:                   uuid.New(),
		orderID:              orderID,
		reason:               reason,
		status:               StatusPending,
		replacementVariantID: replacementVariantID,
		createdAt:            now,
		updatedAt:            now,
	}, nil
}

func Reconstruct(
	id, orderID uuid.UUID,
	reason string,
	status Status,
	adminNotes *string,
	replacementVariantID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Request {
	return &Request{
		id:                   id,
		orderID:              orderID,
		reason:               reason,
		status:               status,
		adminNotes:           adminNotes,
		replacementVariantID: replacementVariantID,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

func (r *Request) ID() uuid.UUID                    { return r.id }
func (r *Request) OrderID() uuid.UUID               { return r.orderID }
func (r *Request) Reason() string                   { return r.reason }
func (r *Request) Status() Status                   { return r.status }
func (r *Request) AdminNotes() *string              { return r.adminNotes }
func (r *Request) ReplacementVariantID() *uuid.UUID { return r.replacementVariantID }
func (r *Request) CreatedAt() time.Time             { return r.createdAt }
func (r *Request) UpdatedAt() time.Time             { return r.updatedAt }
