package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/db"
)

// RetentionReport summarizes one retention sweep
type RetentionReport struct {
	DocumentsDeleted   int64 `json:"documents_deleted"`
	AuditEventsDeleted int64 `json:"audit_events_deleted"`
	ObjectsDeleted     int   `json:"objects_deleted"`
}

// RetentionPolicy removes aged documents, audit events and archived objects.
// The database and the archive are each optional.
type RetentionPolicy struct {
	maxAge   time.Duration
	database *db.DB
	archive  *Archive
	logger   *zap.Logger
}

// NewRetentionPolicy builds a policy keeping data for maxAge
func NewRetentionPolicy(maxAge time.Duration, database *db.DB, archive *Archive, logger *zap.Logger) *RetentionPolicy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetentionPolicy{maxAge: maxAge, database: database, archive: archive, logger: logger}
}

// Run performs one sweep. Match results keep their scores; only document
// texts, audit events and archived originals are removed.
func (p *RetentionPolicy) Run(ctx context.Context) (RetentionReport, error) {
	report := RetentionReport{}
	cutoff := time.Now().Add(-p.maxAge)

	if p.database != nil {
		docs, err := p.database.DeleteDocumentsBefore(ctx, cutoff)
		if err != nil {
			return report, err
		}
		report.DocumentsDeleted = docs

		events, err := p.database.DeleteAuditEventsBefore(ctx, cutoff)
		if err != nil {
			return report, err
		}
		report.AuditEventsDeleted = events
	}

	if p.archive != nil {
		objects, err := p.archive.CleanupBefore(ctx, cutoff)
		if err != nil {
			return report, err
		}
		report.ObjectsDeleted = objects
	}

	return report, nil
}

// Start runs sweeps on the interval until the context is canceled
func (p *RetentionPolicy) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				report, err := p.Run(ctx)
				if err != nil {
					p.logger.Warn("retention sweep failed", zap.Error(err))
					continue
				}
				p.logger.Info("retention sweep complete",
					zap.Int64("documents_deleted", report.DocumentsDeleted),
					zap.Int64("audit_events_deleted", report.AuditEventsDeleted),
					zap.Int("objects_deleted", report.ObjectsDeleted))
			}
		}
	}()
}
