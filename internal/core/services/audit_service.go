package services

import (
	"context"
	"log/slog"

	"github.com/kasapp/cashledger/internal/core/domain"
	portssvc "github.com/kasapp/cashledger/internal/core/ports/services"
	"github.com/kasapp/cashledger/internal/middleware"
)

// slogAuditRecorder writes domain events to the request-scoped structured
// logger. Recording never fails the originating operation.
type slogAuditRecorder struct{}

// NewSlogAuditRecorder creates an AuditRecorder backed by slog.
func NewSlogAuditRecorder() portssvc.AuditRecorder {
	return &slogAuditRecorder{}
}

var _ portssvc.AuditRecorder = (*slogAuditRecorder)(nil)

func (r *slogAuditRecorder) Record(ctx context.Context, event domain.Event) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("audit event",
		slog.String("event", event.EventName()),
		slog.Time("occurred_at", event.OccurredAt()),
		slog.Any("payload", event),
	)
}
