package usecase

import (
	"context"
	"fmt"
	"time"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"
	"airops-service/pkg/logger"

	"github.com/google/uuid"
)

// opLog writes operations log entries for one source subsystem. Failures to
// write are logged, never returned.
type opLog struct {
	logs   repository.LogRepository
	source string
	logger logger.Logger
}

func newOpLog(logs repository.LogRepository, source string, logger logger.Logger) opLog {
	return opLog{logs: logs, source: source, logger: logger}
}

func (l opLog) write(ctx context.Context, severity string, link entity.LogEntry, format string, args ...interface{}) {
	if l.logs == nil {
		return
	}

	entry := &entity.LogEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Source:    l.source,
		Severity:  severity,
		Message:   fmt.Sprintf(format, args...),
		ItemID:    link.ItemID,
		PNR:       link.PNR,
	}
	if err := l.logs.Append(ctx, entry); err != nil {
		l.logger.Error("Failed to append log entry", "message", entry.Message, "error", err)
	}
}

func (l opLog) info(ctx context.Context, link entity.LogEntry, format string, args ...interface{}) {
	l.write(ctx, entity.SeverityInfo, link, format, args...)
}

func (l opLog) warn(ctx context.Context, link entity.LogEntry, format string, args ...interface{}) {
	l.write(ctx, entity.SeverityWarn, link, format, args...)
}

func (l opLog) error(ctx context.Context, link entity.LogEntry, format string, args ...interface{}) {
	l.write(ctx, entity.SeverityError, link, format, args...)
}

func forItem(id string) entity.LogEntry { return entity.LogEntry{ItemID: id} }

func forPNR(pnr string) entity.LogEntry { return entity.LogEntry{PNR: pnr} }
