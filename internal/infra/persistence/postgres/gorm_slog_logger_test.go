package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"society/config"
	deliverycontext "society/internal/delivery/context"
	"society/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestGormSlogLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := newGormSlogLogger(base, &config.Config{})
	sqlFn := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), sqlFn, &pgconn.PgError{Code: pgUniqueViolation})
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), sqlFn, errors.New("connection reset"))
	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "connection reset")

	buf.Reset()
	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)
	assert.Contains(t, buf.String(), "GORM slow query")

	buf.Reset()
	l.Trace(context.Background(), time.Now(), sqlFn, nil)
	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_DebugUsesRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = true
	cfg.Storage.SlowQueryThreshold = time.Hour
	l := newGormSlogLogger(base, cfg)

	ctx := deliverycontext.WithLogger(context.Background(), base.With(slog.String("request_id", "req-9")))
	l.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) { return "SELECT 2", 0 }, nil)

	assert.Contains(t, buf.String(), "GORM query")
	assert.NotContains(t, buf.String(), "slow")
	assert.Contains(t, buf.String(), "request_id=req-9")
}
