package video

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// fakeSynth is a deterministic Synthesizer; failAt names the stage that
// should error, delay slows every stage down.
type fakeSynth struct {
	failAt string
	delay  time.Duration

	mu    sync.Mutex
	calls int
}

func (f *fakeSynth) step(ctx context.Context, name string) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.failAt == name {
		return errors.New(name + " exploded")
	}
	return nil
}

func (f *fakeSynth) EnhancePrompt(ctx context.Context, prompt string, duration int) (string, error) {
	if err := f.step(ctx, "enhance"); err != nil {
		return "", err
	}
	return "enhanced: " + prompt, nil
}

func (f *fakeSynth) GenerateImage(ctx context.Context, enhancedPrompt, originalPrompt string) (string, error) {
	if err := f.step(ctx, "image"); err != nil {
		return "", err
	}
	return "https://img.test/thumb.png", nil
}

func (f *fakeSynth) GenerateVideo(ctx context.Context, imageURL, enhancedPrompt string, duration int) (string, error) {
	if err := f.step(ctx, "video"); err != nil {
		return "", err
	}
	return "https://vid.test/out.mp4", nil
}

func (f *fakeSynth) GenerateSubtitles(ctx context.Context, prompt string) (string, error) {
	if err := f.step(ctx, "subtitles"); err != nil {
		return "", err
	}
	return SubtitleFor(prompt), nil
}

func (f *fakeSynth) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// recordingStore observes every committed checkpoint.
type recordingStore struct {
	*MemoryStore
	mu       sync.Mutex
	creates  int
	progress []int
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: NewMemoryStore()}
}

func (r *recordingStore) Create(ctx context.Context, rec *VideoStatus) error {
	r.mu.Lock()
	r.creates++
	r.mu.Unlock()
	return r.MemoryStore.Create(ctx, rec)
}

func (r *recordingStore) Update(ctx context.Context, id string, upd StatusUpdate) (*VideoStatus, error) {
	rec, err := r.MemoryStore.Update(ctx, id, upd)
	if err == nil {
		r.mu.Lock()
		r.progress = append(r.progress, rec.Progress)
		r.mu.Unlock()
	}
	return rec, err
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Video{}, &Job{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestGenerateSuccess(t *testing.T) {
	store := newRecordingStore()
	repo := NewRepo(openTestDB(t))
	svc := NewService(store, repo, &fakeSynth{}, 0)

	req := &GenerationRequest{Prompt: "You wake up as a pirate in 1700, stormy night", Duration: 20}
	resp, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !resp.Success || resp.Status != StatusCompleted {
		t.Fatalf("response: success=%v status=%s", resp.Success, resp.Status)
	}
	if resp.Progress != 100 {
		t.Fatalf("final progress = %d, want 100", resp.Progress)
	}
	if resp.VideoURL == "" || resp.ThumbnailURL == "" {
		t.Fatalf("output urls missing: %+v", resp)
	}
	if resp.Subtitles != "The ship creaks beneath you..." {
		t.Fatalf("subtitles = %q", resp.Subtitles)
	}
	if resp.HistoricalPeriod != "Golden Age of Piracy (1650-1730)" {
		t.Fatalf("historical period = %q", resp.HistoricalPeriod)
	}
	// "storm" is the only complexity keyword in the prompt
	if resp.EstimatedTime != 30 {
		t.Fatalf("estimated time = %d, want 30", resp.EstimatedTime)
	}
	if resp.SessionID == "" {
		t.Fatalf("session id was not generated")
	}
	if resp.Metadata == nil || resp.Metadata.Format != "mp4" {
		t.Fatalf("metadata: %+v", resp.Metadata)
	}

	rec, err := store.Get(context.Background(), resp.VideoID)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec.Status != StatusCompleted || rec.Progress != 100 {
		t.Fatalf("record: status=%s progress=%d", rec.Status, rec.Progress)
	}
	if rec.CompletedAt == nil {
		t.Fatalf("record missing completedAt")
	}

	vids, err := repo.ListCompleted(context.Background(), 10)
	if err != nil {
		t.Fatalf("list gallery: %v", err)
	}
	if len(vids) != 1 || vids[0].ID != resp.VideoID {
		t.Fatalf("gallery: %+v", vids)
	}
}

func TestGenerateProgressMonotonic(t *testing.T) {
	store := newRecordingStore()
	svc := NewService(store, nil, &fakeSynth{}, 0)

	_, err := svc.Generate(context.Background(), &GenerationRequest{Prompt: "a knight", Duration: 10})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(store.progress) == 0 {
		t.Fatalf("no checkpoints recorded")
	}
	prev := -1
	for i, p := range store.progress {
		if p < prev {
			t.Fatalf("progress decreased at checkpoint %d: %v", i, store.progress)
		}
		prev = p
	}
	if last := store.progress[len(store.progress)-1]; last != 100 {
		t.Fatalf("final checkpoint = %d, want 100", last)
	}
	// stage boundaries only
	seen := map[int]bool{}
	for _, p := range store.progress {
		seen[p] = true
	}
	for _, want := range []int{0, 25, 50, 85, 95, 100} {
		if !seen[want] {
			t.Fatalf("missing checkpoint at %d: %v", want, store.progress)
		}
	}
}

func TestGenerateValidation(t *testing.T) {
	cases := []struct {
		name string
		req  GenerationRequest
		want string
	}{
		{"empty prompt", GenerationRequest{Prompt: "   ", Duration: 10}, "Prompt is required"},
		{"long prompt", GenerationRequest{Prompt: strings.Repeat("x", 201), Duration: 10}, "Prompt must be 200 characters or less"},
		{"bad duration", GenerationRequest{Prompt: "a pirate", Duration: 15}, "Duration must be 10, 20, or 30 seconds"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newRecordingStore()
			synth := &fakeSynth{}
			svc := NewService(store, nil, synth, 0)

			_, err := svc.Generate(context.Background(), &tc.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Message != tc.want {
				t.Fatalf("message = %q, want %q", verr.Message, tc.want)
			}
			if store.creates != 0 {
				t.Fatalf("validation failure created %d records", store.creates)
			}
			if synth.callCount() != 0 {
				t.Fatalf("validation failure ran %d stages", synth.callCount())
			}
		})
	}
}

func TestGenerateStageFailure(t *testing.T) {
	store := newRecordingStore()
	svc := NewService(store, nil, &fakeSynth{failAt: "video"}, 0)

	resp, err := svc.Generate(context.Background(), &GenerationRequest{Prompt: "a pirate", Duration: 10})
	if err != nil {
		t.Fatalf("generate returned error instead of failure response: %v", err)
	}

	if resp.Success || resp.Status != StatusFailed {
		t.Fatalf("response: success=%v status=%s", resp.Success, resp.Status)
	}
	// enhance and image had committed, video had not
	if resp.Progress != 50 {
		t.Fatalf("failure progress = %d, want 50", resp.Progress)
	}
	if !strings.Contains(resp.Error, "video exploded") {
		t.Fatalf("error = %q", resp.Error)
	}

	rec, err := store.Get(context.Background(), resp.VideoID)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec.Status != StatusFailed {
		t.Fatalf("record status = %s", rec.Status)
	}
	if rec.Progress != 50 {
		t.Fatalf("record progress = %d, want preserved 50", rec.Progress)
	}
	if rec.Error == "" || rec.CompletedAt == nil {
		t.Fatalf("failed record: error=%q completedAt=%v", rec.Error, rec.CompletedAt)
	}
	// no output is exposed as final on a failed job
	if rec.VideoURL != "" {
		t.Fatalf("failed record carries a final video url %q", rec.VideoURL)
	}
}

func TestGenerateFirstStageFailureKeepsZeroProgress(t *testing.T) {
	store := newRecordingStore()
	svc := NewService(store, nil, &fakeSynth{failAt: "enhance"}, 0)

	resp, err := svc.Generate(context.Background(), &GenerationRequest{Prompt: "a pirate", Duration: 10})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Progress != 0 {
		t.Fatalf("progress = %d, want 0", resp.Progress)
	}
	rec, _ := store.Get(context.Background(), resp.VideoID)
	if rec.Progress != 0 || rec.Status != StatusFailed {
		t.Fatalf("record: %+v", rec)
	}
}

func TestProcessTerminalIsNoOp(t *testing.T) {
	store := newRecordingStore()
	synth := &fakeSynth{}
	svc := NewService(store, nil, synth, 0)

	req := &GenerationRequest{Prompt: "a pirate", Duration: 10, SessionID: "session_test"}
	resp, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	callsAfterFirst := synth.callCount()

	again, err := svc.Process(context.Background(), resp.VideoID, req)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if synth.callCount() != callsAfterFirst {
		t.Fatalf("terminal job re-executed stages: %d -> %d", callsAfterFirst, synth.callCount())
	}
	if !again.Success || again.Status != StatusCompleted || again.Progress != 100 {
		t.Fatalf("repeat response: %+v", again)
	}
}

func TestStageTimeoutFailsJob(t *testing.T) {
	store := newRecordingStore()
	svc := NewService(store, nil, &fakeSynth{delay: 200 * time.Millisecond}, 20*time.Millisecond)

	resp, err := svc.Generate(context.Background(), &GenerationRequest{Prompt: "a pirate", Duration: 10})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Success || resp.Status != StatusFailed {
		t.Fatalf("response: %+v", resp)
	}
	if !strings.Contains(resp.Error, "timed out") {
		t.Fatalf("error = %q, want a timeout message", resp.Error)
	}
}
