package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vibelabs/pov-video/internal/video"
)

// Blackbox calls the Blackbox AI generation endpoints (Flux for images, Veo-3
// for video). Prompt enhancement and subtitle derivation stay local since no
// remote model is involved for those steps.
type Blackbox struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewBlackbox(baseURL, apiKey string) *Blackbox {
	if baseURL == "" {
		baseURL = "https://api.blackbox.ai/v1"
	}
	return &Blackbox{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 90 * time.Second},
	}
}

func (p *Blackbox) EnhancePrompt(ctx context.Context, prompt string, duration int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return EnhancePromptText(prompt, duration), nil
}

type imageGenReq struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Steps  int    `json:"steps"`
}

type imageGenResp struct {
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

func (p *Blackbox) GenerateImage(ctx context.Context, enhancedPrompt, originalPrompt string) (string, error) {
	_ = originalPrompt
	var out imageGenResp
	err := p.post(ctx, "/image/generate", imageGenReq{
		Model:  "flux-1.1-pro",
		Prompt: enhancedPrompt,
		Width:  1080,
		Height: 1920,
		Steps:  30,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", errors.New(out.Error)
	}
	if out.URL == "" {
		return "", errors.New("blackbox: empty image url")
	}
	return out.URL, nil
}

type videoGenReq struct {
	Model       string `json:"model"`
	Prompt      string `json:"prompt"`
	ImageURL    string `json:"image_url,omitempty"`
	Duration    int    `json:"duration"`
	AspectRatio string `json:"aspect_ratio"`
}

type videoGenResp struct {
	VideoURL string `json:"video_url"`
	Error    string `json:"error,omitempty"`
}

func (p *Blackbox) GenerateVideo(ctx context.Context, imageURL, enhancedPrompt string, duration int) (string, error) {
	var out videoGenResp
	err := p.post(ctx, "/video/generate", videoGenReq{
		Model:       "veo-3",
		Prompt:      enhancedPrompt,
		ImageURL:    imageURL,
		Duration:    duration,
		AspectRatio: "9:16",
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", errors.New(out.Error)
	}
	if out.VideoURL == "" {
		return "", errors.New("blackbox: empty video url")
	}
	return out.VideoURL, nil
}

func (p *Blackbox) GenerateSubtitles(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return video.SubtitleFor(prompt), nil
}

func (p *Blackbox) post(ctx context.Context, path string, in any, out any) error {
	if p.Client == nil {
		return errors.New("blackbox: http client is nil")
	}
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("blackbox: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
