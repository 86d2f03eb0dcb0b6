// Package audit records authorized actions in the durable access log.
// Recording is best-effort: the access log must never block or fail the
// request that triggered it.
package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"harborview.org/internal/identity"
	"harborview.org/internal/obs"
)

// Appender is the slice of the persistence collaborator the recorder
// needs: one append-only write.
type Appender interface {
	AppendAccessLog(ctx context.Context, entry *identity.AccessLogEntry) error
}

// Recorder appends AccessLogEntries, swallowing storage failures into the
// operational log.
type Recorder struct {
	store Appender
	log   *zerolog.Logger
	now   func() time.Time
}

func NewRecorder(store Appender, log *zerolog.Logger) *Recorder {
	return &Recorder{store: store, log: log, now: time.Now}
}

// Record appends one entry attributing action to identityID. Errors are
// reported to the operational log and counted, never returned.
func (r *Recorder) Record(ctx context.Context, identityID, action string) {
	if r == nil || r.store == nil {
		return
	}
	entry := &identity.AccessLogEntry{
		IdentityID: identityID,
		Action:     action,
		OccurredAt: r.now().UTC(),
	}
	if err := r.store.AppendAccessLog(ctx, entry); err != nil {
		obs.CountAccessLogFailure()
		r.log.Error().Err(err).
			Str("identity_id", identityID).
			Str("action", action).
			Msg("access log append failed")
	}
}
