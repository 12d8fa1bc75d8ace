package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/hrms-service/internal/events"
)

// AuditService writes an audit log line for every registry and attendance event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     loggerOrNop(logger).Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventEmployeeCreated, a.record)
	a.dispatcher.Subscribe(events.EventEmployeeDeleted, a.record)
	a.dispatcher.Subscribe(events.EventAttendanceMarked, a.record)
}

func (a *AuditService) record(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("employee_id", event.EmployeeID),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload))
	return nil
}
