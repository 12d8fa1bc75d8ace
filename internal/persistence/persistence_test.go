package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/hrms-service/internal/config"
)

func TestErrorClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "employees_employee_id_key"}
	foreignKey := &pgconn.PgError{Code: "23503", ConstraintName: "attendance_employee_id_fkey"}
	tooMany := &pgconn.PgError{Code: "53300"}
	shutdown := &pgconn.PgError{Code: "57P01"}
	syntax := &pgconn.PgError{Code: "42601"}

	tests := []struct {
		name        string
		err         error
		unique      bool
		foreignKey  bool
		unavailable bool
	}{
		{name: "unique", err: fmt.Errorf("insert: %w", unique), unique: true},
		{name: "foreign key", err: foreignKey, foreignKey: true},
		{name: "too many connections", err: tooMany, unavailable: true},
		{name: "admin shutdown", err: shutdown, unavailable: true},
		{name: "syntax", err: syntax},
		{name: "deadline", err: fmt.Errorf("acquire: %w", context.DeadlineExceeded), unavailable: true},
		{name: "sentinel", err: fmt.Errorf("%w: boom", ErrUnavailable), unavailable: true},
		{name: "plain", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, IsUniqueViolation(tt.err))
			assert.Equal(t, tt.foreignKey, IsForeignKeyViolation(tt.err))
			assert.Equal(t, tt.unavailable, IsUnavailable(tt.err))
		})
	}

	assert.Equal(t, "employees_employee_id_key", ConstraintName(unique))
	assert.Empty(t, ConstraintName(errors.New("boom")))
}

func TestWithinTxWithoutPool(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)

	called := false
	err = pg.WithinTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.False(t, called)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.True(t, IsUnavailable(err))
	assert.ErrorIs(t, pg.Ping(context.Background()), ErrNotConfigured)
}

func TestMigrationsEmbedded(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_init.sql", names[0])

	content, err := migrationFiles.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)
	assert.Contains(t, string(content), "attendance_employee_date_key UNIQUE (employee_id, date)")
	assert.Contains(t, string(content), "ON DELETE CASCADE")
}

func TestRedisDisabled(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, zap.NewNop())

	assert.False(t, r.Enabled())
	assert.ErrorIs(t, r.Ping(context.Background()), ErrRedisDisabled)
	r.Close()
}
