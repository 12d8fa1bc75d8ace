package errorutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name    string
		err     error
		kind    Kind
		message string
	}{
		{name: "not found", err: NewNotFound("employee", nil), kind: KindNotFound, message: "employee not found"},
		{name: "conflict", err: NewConflict("already exists", nil), kind: KindConflict, message: "already exists"},
		{name: "wrapped conflict", err: fmt.Errorf("create: %w", NewConflict("dup", nil)), kind: KindConflict, message: "dup"},
		{name: "unavailable", err: NewUnavailable(cause), kind: KindUnavailable, message: "service temporarily unavailable"},
		{name: "plain error", err: cause, kind: KindInternal, message: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.message, got.Message)
		})
	}

	assert.Nil(t, ToDomainError(nil))
}

func TestIsKindIgnoresMessageText(t *testing.T) {
	err := NewConflict("Employee ID EMP001 not found in the way you expect", nil)

	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(errors.New("employee not found"), KindNotFound))
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("pool closed")
	err := NewUnavailable(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "service temporarily unavailable: pool closed", err.Error())
}
