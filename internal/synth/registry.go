package synth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/vibelabs/pov-video/internal/video"
)

type ProviderFactory func(ctx context.Context) (video.Synthesizer, error)

// Registry resolves synthesizer backends by name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ProviderFactory)}
}

func (r *Registry) Register(name string, f ProviderFactory) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

func (r *Registry) Get(ctx context.Context, name string) (video.Synthesizer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown synthesizer provider: %s", name)
	}
	return f(ctx)
}

// EnhancePromptText rewrites a user prompt into the cinematic POV form sent to
// the image and video models.
func EnhancePromptText(prompt string, duration int) string {
	return fmt.Sprintf(`Create a cinematic first-person POV historical video: %s.
STYLE: TikTok viral POV format, immersive first-person perspective.
CAMERA: Looking down at your own hands and feet, realistic body positioning.
VISUAL: Film grain texture, dramatic lighting, rich historical details.
MOVEMENT: Slow forward motion, subtle camera shake, natural head movement.
ENVIRONMENT: Historically accurate setting, period-appropriate props and clothing.
FORMAT: Vertical 9:16 aspect ratio, %d seconds duration.`, prompt, duration)
}
