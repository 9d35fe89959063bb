package video

import (
	"context"

	"gorm.io/gorm"
)

// Repo persists finished generations (gallery) and async job rows.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CreateVideo(ctx context.Context, v *Video) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *Repo) GetVideoByID(ctx context.Context, id string) (*Video, error) {
	var v Video
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// ListCompleted returns finished generations, newest first.
func (r *Repo) ListCompleted(ctx context.Context, limit int) ([]Video, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var vids []Video
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(StatusCompleted)).
		Order("created_at DESC").
		Limit(limit).
		Find(&vids).Error; err != nil {
		return nil, err
	}
	return vids, nil
}

// Job CRUD
func (r *Repo) CreateJob(ctx context.Context, job *Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *Repo) GetJobByID(ctx context.Context, id string) (*Job, error) {
	var j Job
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *Repo) MarkJobRunning(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ? AND status = ?", id, JobQueued).
		Update("status", JobRunning).Error
}

func (r *Repo) MarkJobSucceeded(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": JobSucceeded,
			"error":  nil,
		}).Error
}

func (r *Repo) MarkJobFailed(ctx context.Context, id string, errMsg string) error {
	return r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": JobFailed,
			"error":  errMsg,
		}).Error
}
