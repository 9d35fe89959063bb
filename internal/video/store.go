package video

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a video id is absent from the status store.
var ErrNotFound = errors.New("video not found")

// ErrDuplicateID is returned when creating a record whose id already exists.
var ErrDuplicateID = errors.New("video id already exists")

// StatusStore is the keyed checkpoint store shared by the orchestrator and the
// reconciliation API. Implementations must provide atomic per-key
// read-modify-write; cross-key operations are independent.
type StatusStore interface {
	// Create inserts a new record, failing with ErrDuplicateID if the id exists.
	Create(ctx context.Context, rec *VideoStatus) error
	// Get returns a copy of the record or ErrNotFound.
	Get(ctx context.Context, id string) (*VideoStatus, error)
	// Update merges the non-nil fields of upd into the record and returns the
	// merged result, or ErrNotFound. The record id is never changed and
	// CompletedAt is set exactly once, the first time the status turns terminal.
	Update(ctx context.Context, id string, upd StatusUpdate) (*VideoStatus, error)
	// Delete removes the record, reporting whether one existed.
	Delete(ctx context.Context, id string) (bool, error)
}

// NewPendingStatus returns the initial checkpoint record for a job.
func NewPendingStatus(videoID string) *VideoStatus {
	return &VideoStatus{
		VideoID:     videoID,
		Status:      StatusPending,
		Progress:    0,
		CurrentStep: "Initializing...",
		CreatedAt:   time.Now(),
	}
}

// ApplyUpdate merges upd into rec in place, enforcing id immutability and the
// write-once CompletedAt rule. Shared by store implementations.
func ApplyUpdate(rec *VideoStatus, upd StatusUpdate) {
	if upd.Status != nil {
		rec.Status = *upd.Status
	}
	if upd.Progress != nil {
		rec.Progress = *upd.Progress
	}
	if upd.CurrentStep != nil {
		rec.CurrentStep = *upd.CurrentStep
	}
	if upd.VideoURL != nil {
		rec.VideoURL = *upd.VideoURL
	}
	if upd.ThumbnailURL != nil {
		rec.ThumbnailURL = *upd.ThumbnailURL
	}
	if upd.Subtitles != nil {
		rec.Subtitles = *upd.Subtitles
	}
	if upd.Error != nil {
		rec.Error = *upd.Error
	}
	if rec.Status.Terminal() && rec.CompletedAt == nil {
		now := time.Now()
		rec.CompletedAt = &now
	}
}
