package synth

import (
	"context"
	"strings"
	"testing"

	"github.com/vibelabs/pov-video/internal/video"
)

func TestRegistryResolvesByName(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Mock", func(ctx context.Context) (video.Synthesizer, error) {
		return NewMock(0), nil
	})

	s, err := reg.Get(context.Background(), "  mock ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := s.(*Mock); !ok {
		t.Fatalf("resolved %T, want *Mock", s)
	}

	if _, err := reg.Get(context.Background(), "veo-direct"); err == nil {
		t.Fatal("expected error for unregistered provider")
	}
}

func TestMockStages(t *testing.T) {
	m := NewMock(0)
	ctx := context.Background()

	enhanced, err := m.EnhancePrompt(ctx, "You wake up as a pirate", 20)
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	if !strings.Contains(enhanced, "You wake up as a pirate") ||
		!strings.Contains(enhanced, "20 seconds duration") {
		t.Fatalf("enhanced prompt missing inputs: %q", enhanced)
	}

	img, err := m.GenerateImage(ctx, enhanced, "You wake up as a pirate")
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	// the pirate prompt resolves to the ocean palette
	if !strings.Contains(img, "1e3a8a") {
		t.Fatalf("image url = %q", img)
	}

	vid, err := m.GenerateVideo(ctx, img, enhanced, 20)
	if err != nil {
		t.Fatalf("video: %v", err)
	}
	if !strings.HasSuffix(vid, ".mp4") {
		t.Fatalf("video url = %q", vid)
	}

	subs, err := m.GenerateSubtitles(ctx, "You wake up as a pirate")
	if err != nil {
		t.Fatalf("subtitles: %v", err)
	}
	if subs != "The ship creaks beneath you..." {
		t.Fatalf("subtitles = %q", subs)
	}
}

func TestMockHonorsCancellation(t *testing.T) {
	m := NewMock(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.EnhancePrompt(ctx, "a knight", 10); err == nil {
		t.Fatal("expected context error")
	}
}
