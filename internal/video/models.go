package video

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// VideoStatus is the checkpoint record tracked per generation job. It is written
// by the orchestrator at stage boundaries and read by polling clients.
type VideoStatus struct {
	VideoID      string     `json:"videoId"`
	Status       Status     `json:"status"`
	Progress     int        `json:"progress"`
	CurrentStep  string     `json:"currentStep"`
	VideoURL     string     `json:"videoUrl,omitempty"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	Subtitles    string     `json:"subtitles,omitempty"`
	Error        string     `json:"error,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// StatusUpdate is a partial update; nil fields are left untouched.
// VideoID and CompletedAt are deliberately absent: the id is immutable and the
// completion time is set by the store on the first terminal transition.
type StatusUpdate struct {
	Status       *Status `json:"status"`
	Progress     *int    `json:"progress"`
	CurrentStep  *string `json:"currentStep"`
	VideoURL     *string `json:"videoUrl"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	Subtitles    *string `json:"subtitles"`
	Error        *string `json:"error"`
}

// GenerationRequest is the input contract for a generation job.
type GenerationRequest struct {
	Prompt    string `json:"prompt"`
	Duration  int    `json:"duration"`
	SessionID string `json:"sessionId,omitempty"`
}

// Metadata describes the produced video file.
type Metadata struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Format      string    `json:"format"`
	Resolution  string    `json:"resolution"`
	FileSize    int64     `json:"fileSize"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GenerationResponse is returned by the synchronous generation endpoint.
// On failure only Success, VideoID, Status, Error and Progress are meaningful.
type GenerationResponse struct {
	Success          bool      `json:"success"`
	VideoID          string    `json:"videoId"`
	Status           Status    `json:"status"`
	VideoURL         string    `json:"videoUrl,omitempty"`
	ThumbnailURL     string    `json:"thumbnailUrl,omitempty"`
	Subtitles        string    `json:"subtitles,omitempty"`
	Error            string    `json:"error,omitempty"`
	Progress         int       `json:"progress"`
	CurrentStep      string    `json:"currentStep,omitempty"`
	Metadata         *Metadata `json:"metadata,omitempty"`
	EstimatedTime    int       `json:"estimatedTime,omitempty"`
	HistoricalPeriod string    `json:"historicalPeriod,omitempty"`
	SessionID        string    `json:"sessionId,omitempty"`
}

// Video is the relational record of a finished generation, used by the gallery.
type Video struct {
	ID               string `gorm:"primaryKey;size:32"`
	SessionID        string `gorm:"size:64;index"`
	Prompt           string `gorm:"type:text;not null"`
	Duration         int    `gorm:"not null"`
	HistoricalPeriod string `gorm:"size:64"`
	VideoURL         string `gorm:"size:512"`
	ThumbnailURL     string `gorm:"size:512"`
	Subtitles        string `gorm:"type:text"`
	Status           string `gorm:"size:16;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Video) TableName() string { return "videos" }

type JobState string

const (
	JobQueued    JobState = "queued"
	JobRunning   JobState = "running"
	JobSucceeded JobState = "succeeded"
	JobFailed    JobState = "failed"
)

// Job is the durable row behind the async generation endpoint. Its ID doubles
// as the video id tracked in the status store.
type Job struct {
	ID        string `gorm:"primaryKey;size:32"`
	SessionID string `gorm:"size:64;index;not null"`

	Prompt   string `gorm:"type:text;not null"`
	Duration int    `gorm:"not null"`

	Status JobState `gorm:"type:varchar(16);index;not null"`

	// Filled when failed
	Error *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Job) TableName() string { return "generation_jobs" }
