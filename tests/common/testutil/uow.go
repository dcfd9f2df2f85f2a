//go:build unit || e2e

package testutil

import (
	"context"

	"order-engine/internal/infra/db"
	"order-engine/internal/usecase/shared"
)

// StubUnitOfWork passes the configured Tx straight to the callback. It lets
// unit tests drive command flows against repository mocks without a database.
type StubUnitOfWork struct {
	Tx shared.Tx
	// Err short-circuits Within before the callback runs.
	Err error
}

func (s *StubUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if s.Err != nil {
		return s.Err
	}
	return fn(ctx, s.Tx)
}

func (s *StubUnitOfWork) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	if s.Err != nil {
		return s.Err
	}
	return fn(ctx, nil)
}
