package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/events"
)

func TestAuditServiceRecordsEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core)).RegisterHandlers()

	f := newFixture(time.Now())
	f.employees.dispatcher = dispatcher
	f.attendance.dispatcher = dispatcher
	ctx := context.Background()

	_, err := f.employees.Create(ctx, newEmployeeInput(AutoEmployeeID(), "John Doe"))
	require.NoError(t, err)
	_, err = f.attendance.Mark(ctx, AttendanceMarkInput{EmployeeID: "EMP001", Date: day("2026-02-01"), Status: domain.AttendancePresent})
	require.NoError(t, err)
	_, err = f.employees.Delete(ctx, "EMP001")
	require.NoError(t, err)

	entries := logs.Filter(func(e observer.LoggedEntry) bool {
		return e.LoggerName == "audit"
	}).All()
	require.Len(t, entries, 3)
	assert.Equal(t, string(events.EventEmployeeCreated), entries[0].Message)
	assert.Equal(t, string(events.EventAttendanceMarked), entries[1].Message)
	assert.Equal(t, string(events.EventEmployeeDeleted), entries[2].Message)
	assert.Equal(t, "EMP001", entries[2].ContextMap()["employee_id"])
}

func TestAuditServiceWithoutDispatcher(t *testing.T) {
	assert.NotPanics(t, func() { NewAuditService(nil, nil).RegisterHandlers() })
}
