package synth

import (
	"context"
	"fmt"
	"time"

	"github.com/vibelabs/pov-video/internal/video"
)

// Stage latencies of the simulated external models, scaled by Mock.Scale.
const (
	mockEnhanceDelay  = 2 * time.Second
	mockImageDelay    = 8 * time.Second
	mockVideoDelay    = 15 * time.Second
	mockSubtitleDelay = 3 * time.Second
)

// Mock simulates the generation backends with timed delays and placeholder
// URLs. Scale stretches or shrinks the stage delays; zero disables them.
type Mock struct {
	Scale float64
}

func NewMock(scale float64) *Mock {
	return &Mock{Scale: scale}
}

func (m *Mock) sleep(ctx context.Context, d time.Duration) error {
	d = time.Duration(float64(d) * m.Scale)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *Mock) EnhancePrompt(ctx context.Context, prompt string, duration int) (string, error) {
	if err := m.sleep(ctx, mockEnhanceDelay); err != nil {
		return "", err
	}
	return EnhancePromptText(prompt, duration), nil
}

func (m *Mock) GenerateImage(ctx context.Context, enhancedPrompt, originalPrompt string) (string, error) {
	_ = enhancedPrompt
	if err := m.sleep(ctx, mockImageDelay); err != nil {
		return "", err
	}
	theme := video.ThemeFor(originalPrompt)
	return fmt.Sprintf("https://placehold.co/1080x1920/%s/ffffff?text=POV+Historical+Thumbnail", theme.Colors[0]), nil
}

func (m *Mock) GenerateVideo(ctx context.Context, imageURL, enhancedPrompt string, duration int) (string, error) {
	_, _, _ = imageURL, enhancedPrompt, duration
	if err := m.sleep(ctx, mockVideoDelay); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://storage.googleapis.com/workspace-videos/pov-historical-%d.mp4", time.Now().UnixMilli()), nil
}

func (m *Mock) GenerateSubtitles(ctx context.Context, prompt string) (string, error) {
	if err := m.sleep(ctx, mockSubtitleDelay); err != nil {
		return "", err
	}
	return video.SubtitleFor(prompt), nil
}
