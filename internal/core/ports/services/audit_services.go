package services

import (
	"context"

	"github.com/kasapp/cashledger/internal/core/domain"
)

// AuditRecorder receives domain events after state changes commit. Failures
// to record must not fail the originating operation.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.Event)
}
