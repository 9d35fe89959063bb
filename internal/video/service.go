package video

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/vibelabs/pov-video/internal/common"
)

// Synthesizer is the capability contract the pipeline stages run against.
// Production wires an HTTP client, tests wire deterministic fakes.
type Synthesizer interface {
	// EnhancePrompt rewrites the user prompt for cinematic POV generation.
	EnhancePrompt(ctx context.Context, prompt string, duration int) (string, error)
	// GenerateImage produces the thumbnail/preview image URL.
	GenerateImage(ctx context.Context, enhancedPrompt, originalPrompt string) (string, error)
	// GenerateVideo animates the image into a video and returns its URL.
	GenerateVideo(ctx context.Context, imageURL, enhancedPrompt string, duration int) (string, error)
	// GenerateSubtitles derives the subtitle text for the prompt.
	GenerateSubtitles(ctx context.Context, prompt string) (string, error)
}

// Service drives generation jobs through the staged pipeline, checkpointing
// progress into the status store at stage boundaries.
type Service struct {
	statuses     StatusStore
	repo         *Repo
	synth        Synthesizer
	stageTimeout time.Duration
}

// NewService builds the orchestrator. repo may be nil when no relational
// record of finished generations is wanted. stageTimeout bounds each stage;
// zero disables the bound.
func NewService(statuses StatusStore, repo *Repo, synth Synthesizer, stageTimeout time.Duration) *Service {
	return &Service{statuses: statuses, repo: repo, synth: synth, stageTimeout: stageTimeout}
}

// Generate validates the request, registers a new pending job and runs the
// pipeline to completion. Stage failures are absorbed into the returned
// response; only validation and id allocation errors are returned as errors.
func (s *Service) Generate(ctx context.Context, req *GenerationRequest) (*GenerationResponse, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	if req.SessionID == "" {
		req.SessionID = common.NewSessionID()
	}

	videoID, err := common.NewVideoID()
	if err != nil {
		return nil, err
	}
	if err := s.statuses.Create(ctx, NewPendingStatus(videoID)); err != nil {
		return nil, err
	}
	return s.run(ctx, videoID, req), nil
}

// Register validates the request and creates the pending status record without
// running the pipeline. Used by the async endpoint before enqueueing.
func (s *Service) Register(ctx context.Context, req *GenerationRequest) (string, error) {
	if err := ValidateRequest(req); err != nil {
		return "", err
	}
	if req.SessionID == "" {
		req.SessionID = common.NewSessionID()
	}
	videoID, err := common.NewVideoID()
	if err != nil {
		return "", err
	}
	if err := s.statuses.Create(ctx, NewPendingStatus(videoID)); err != nil {
		return "", err
	}
	return videoID, nil
}

// Process runs the pipeline for an already-registered job, creating the status
// record if it is missing. Repeat attempts on a terminal job are no-ops.
func (s *Service) Process(ctx context.Context, videoID string, req *GenerationRequest) (*GenerationResponse, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	if err := s.statuses.Create(ctx, NewPendingStatus(videoID)); err != nil && !errors.Is(err, ErrDuplicateID) {
		return nil, err
	}
	return s.run(ctx, videoID, req), nil
}

func (s *Service) run(ctx context.Context, videoID string, req *GenerationRequest) *GenerationResponse {
	// Terminal jobs never re-execute.
	if rec, err := s.statuses.Get(ctx, videoID); err == nil && rec.Status.Terminal() {
		return responseFromRecord(rec, req)
	}

	progress := 0
	if _, err := s.checkpoint(ctx, videoID, StatusProcessing, progress, Stages[0].Description); err != nil {
		return s.fail(ctx, videoID, progress, err)
	}

	var enhanced string
	err := s.stage(ctx, func(sc context.Context) error {
		var serr error
		enhanced, serr = s.synth.EnhancePrompt(sc, req.Prompt, req.Duration)
		return serr
	})
	if err != nil {
		return s.fail(ctx, videoID, progress, err)
	}
	progress = Stages[0].High
	if _, err := s.checkpoint(ctx, videoID, StatusProcessing, progress, Stages[1].Description); err != nil {
		return s.fail(ctx, videoID, progress, err)
	}

	var thumbnailURL string
	err = s.stage(ctx, func(sc context.Context) error {
		var serr error
		thumbnailURL, serr = s.synth.GenerateImage(sc, enhanced, req.Prompt)
		return serr
	})
	if err != nil {
		return s.fail(ctx, videoID, progress, err)
	}
	progress = Stages[1].High
	if _, err := s.checkpoint(ctx, videoID, StatusProcessing, progress, Stages[2].Description); err != nil {
		return s.fail(ctx, videoID, progress, err)
	}

	var videoURL string
	err = s.stage(ctx, func(sc context.Context) error {
		var serr error
		videoURL, serr = s.synth.GenerateVideo(sc, thumbnailURL, enhanced, req.Duration)
		return serr
	})
	if err != nil {
		return s.fail(ctx, videoID, progress, err)
	}
	progress = Stages[2].High
	if _, err := s.checkpoint(ctx, videoID, StatusProcessing, progress, Stages[3].Description); err != nil {
		return s.fail(ctx, videoID, progress, err)
	}

	var subtitles string
	err = s.stage(ctx, func(sc context.Context) error {
		var serr error
		subtitles, serr = s.synth.GenerateSubtitles(sc, req.Prompt)
		return serr
	})
	if err != nil {
		return s.fail(ctx, videoID, progress, err)
	}
	progress = Stages[3].High
	if _, err := s.checkpoint(ctx, videoID, StatusProcessing, progress, Stages[4].Description); err != nil {
		return s.fail(ctx, videoID, progress, err)
	}

	// Finalization: persist the gallery record, then commit the terminal state.
	period := HistoricalPeriod(req.Prompt)
	if s.repo != nil {
		v := &Video{
			ID:               videoID,
			SessionID:        req.SessionID,
			Prompt:           req.Prompt,
			Duration:         req.Duration,
			HistoricalPeriod: period,
			VideoURL:         videoURL,
			ThumbnailURL:     thumbnailURL,
			Subtitles:        subtitles,
			Status:           string(StatusCompleted),
		}
		if err := s.repo.CreateVideo(ctx, v); err != nil {
			return s.fail(ctx, videoID, progress, fmt.Errorf("persist video: %w", err))
		}
	}

	done := StatusCompleted
	doneStep := "Video generation completed!"
	full := 100
	rec, err := s.statuses.Update(ctx, videoID, StatusUpdate{
		Status:       &done,
		Progress:     &full,
		CurrentStep:  &doneStep,
		VideoURL:     &videoURL,
		ThumbnailURL: &thumbnailURL,
		Subtitles:    &subtitles,
	})
	if err != nil {
		return s.fail(ctx, videoID, progress, err)
	}

	title := req.Prompt
	if len(title) > 50 {
		title = title[:50]
	}
	return &GenerationResponse{
		Success:          true,
		VideoID:          videoID,
		Status:           rec.Status,
		VideoURL:         videoURL,
		ThumbnailURL:     thumbnailURL,
		Subtitles:        subtitles,
		Progress:         rec.Progress,
		CurrentStep:      rec.CurrentStep,
		Metadata:         NewMetadata("POV: "+title+"...", req.Prompt, req.Duration),
		EstimatedTime:    EstimateGenerationTime(req.Prompt),
		HistoricalPeriod: period,
		SessionID:        req.SessionID,
	}
}

// stage runs one pipeline step under the configured timeout.
func (s *Service) stage(ctx context.Context, fn func(context.Context) error) error {
	if s.stageTimeout <= 0 {
		return fn(ctx)
	}
	sc, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()
	err := fn(sc)
	if err != nil && errors.Is(sc.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("stage timed out after %s: %w", s.stageTimeout, err)
	}
	return err
}

func (s *Service) checkpoint(ctx context.Context, videoID string, status Status, progress int, step string) (*VideoStatus, error) {
	return s.statuses.Update(ctx, videoID, StatusUpdate{
		Status:      &status,
		Progress:    &progress,
		CurrentStep: &step,
	})
}

// fail commits the terminal failed state, preserving the progress reached.
func (s *Service) fail(ctx context.Context, videoID string, progress int, cause error) *GenerationResponse {
	failed := StatusFailed
	msg := cause.Error()
	if _, err := s.statuses.Update(ctx, videoID, StatusUpdate{
		Status: &failed,
		Error:  &msg,
	}); err != nil {
		log.Printf("video %s: record failure: %v (original: %v)", videoID, err, cause)
	}
	return &GenerationResponse{
		Success:  false,
		VideoID:  videoID,
		Status:   StatusFailed,
		Error:    msg,
		Progress: progress,
	}
}

func responseFromRecord(rec *VideoStatus, req *GenerationRequest) *GenerationResponse {
	resp := &GenerationResponse{
		Success:      rec.Status == StatusCompleted,
		VideoID:      rec.VideoID,
		Status:       rec.Status,
		VideoURL:     rec.VideoURL,
		ThumbnailURL: rec.ThumbnailURL,
		Subtitles:    rec.Subtitles,
		Error:        rec.Error,
		Progress:     rec.Progress,
		CurrentStep:  rec.CurrentStep,
		SessionID:    req.SessionID,
	}
	if rec.Status == StatusCompleted {
		resp.HistoricalPeriod = HistoricalPeriod(req.Prompt)
		resp.EstimatedTime = EstimateGenerationTime(req.Prompt)
	}
	return resp
}

// Statuses exposes the underlying store to the API layer.
func (s *Service) Statuses() StatusStore { return s.statuses }

// Gallery lists finished generations, newest first.
func (s *Service) Gallery(ctx context.Context, limit int) ([]Video, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListCompleted(ctx, limit)
}
