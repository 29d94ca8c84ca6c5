package logging

import (
	"bytes"
	"database/sql"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockCloser struct {
	closeErr error
	closed   bool
}

func (m *mockCloser) Close() error {
	m.closed = true
	return m.closeErr
}

type mockTx struct {
	rollbackErr error
}

func (m *mockTx) Rollback() error {
	return m.rollbackErr
}

func TestSafeCloseWithLogging(t *testing.T) {
	t.Run("successful close does not log", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		closer := &mockCloser{}
		SafeCloseWithLogging(closer, logger, "dataset_body")

		assert.True(t, closer.closed)
		assert.Empty(t, buf.String())
	})

	t.Run("failed close is logged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeCloseWithLogging(&mockCloser{closeErr: errors.New("close failed")}, logger, "dataset_body")

		output := buf.String()
		assert.Contains(t, output, `"msg":"failed to close resource"`)
		assert.Contains(t, output, `"operation":"dataset_body"`)
		assert.Contains(t, output, `"error":"close failed"`)
	})

	t.Run("nil closer is ignored", func(t *testing.T) {
		SafeCloseWithLogging(nil, nil, "noop")
	})
}

func TestSafeRollbackWithLogging(t *testing.T) {
	t.Run("already committed transactions are not logged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeRollbackWithLogging(&mockTx{rollbackErr: sql.ErrTxDone}, logger, "import_rows")
		assert.Empty(t, buf.String())
	})

	t.Run("other rollback failures are logged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeRollbackWithLogging(&mockTx{rollbackErr: errors.New("disk I/O error")}, logger, "import_rows")

		output := buf.String()
		assert.Contains(t, output, `"msg":"failed to rollback transaction"`)
		assert.Contains(t, output, `"component":"database"`)
	})
}
