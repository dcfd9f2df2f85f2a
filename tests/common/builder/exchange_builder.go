//go:build unit || e2e

package builder

import (
	"time"

	domexchange "order-engine/internal/domain/exchange"
	"order-engine/internal/pkg/clock"

	"github.com/google/uuid"
)

type ExchangeBuilder struct {
	ID                   uuid.UUID
	OrderID              uuid.UUID
	Reason               string
	Status               domexchange.Status
	AdminNotes           *string
	ReplacementVariantID *uuid.UUID
	Now                  time.Time
}

func NewExchangeBuilder() *ExchangeBuilder {
	return &ExchangeBuilder{
		ID:      uuid.New(),
		OrderID: uuid.New(),
		Reason:  "Wrong size delivered",
		Status:  domexchange.StatusPending,
		Now:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ExchangeBuilder) With(mutate func(*ExchangeBuilder)) *ExchangeBuilder {
	mutate(b)
	return b
}

func (b *ExchangeBuilder) WithStatus(status domexchange.Status) *ExchangeBuilder {
	b.Status = status
	return b
}

func (b *ExchangeBuilder) WithReplacement(variantID uuid.UUID) *ExchangeBuilder {
	b.ReplacementVariantID = &variantID
	return b
}

func (b *ExchangeBuilder) BuildDomain() (*domexchange.Request, error) {
	return domexchange.NewRequest(clock.NewMockClock(b.Now), b.OrderID, b.Reason, b.ReplacementVariantID)
}

func (b *ExchangeBuilder) BuildReconstructed() *domexchange.Request {
	return domexchange.Reconstruct(
		b.ID, b.OrderID, b.Reason, b.Status,
		b.AdminNotes, b.ReplacementVariantID,
		b.Now, b.Now,
	)
}
