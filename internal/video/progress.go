package video

import "strings"

// Stage is one step of the generation pipeline with its inclusive progress
// range and the label shown to clients while it runs.
type Stage struct {
	Name        string
	Low, High   int
	Description string
}

// Stages is the fixed pipeline table. Ranges are contiguous and cover [0,100].
var Stages = []Stage{
	{Name: "Prompt Analysis", Low: 0, High: 25, Description: "GPT-5 enhancing your prompt"},
	{Name: "Image Generation", Low: 25, High: 50, Description: "Flux creating cinematic scene"},
	{Name: "Video Creation", Low: 50, High: 85, Description: "Veo-3 animating your story"},
	{Name: "Subtitle Addition", Low: 85, High: 95, Description: "Adding contextual subtitles"},
	{Name: "Finalization", Low: 95, High: 100, Description: "Preparing your video"},
}

// StageFor returns the stage whose range contains percentage. Boundary values
// shared by two ranges resolve to the earlier stage: the table is scanned
// low-to-high and the first match wins, so 25 is Prompt Analysis.
func StageFor(percentage int) (Stage, bool) {
	for _, st := range Stages {
		if percentage >= st.Low && percentage <= st.High {
			return st, true
		}
	}
	return Stage{}, false
}

// RemainingTime estimates the seconds left given the total estimate and the
// current percentage, floored at zero.
func RemainingTime(estimatedTotalSeconds, percentage int) int {
	remaining := estimatedTotalSeconds * (100 - percentage) / 100
	if remaining < 0 {
		return 0
	}
	return remaining
}

// complexityKeywords each add 5s to the base generation time estimate.
var complexityKeywords = []string{"storm", "battle", "crowd", "fire", "magic", "dragon", "army"}

const (
	baseGenerationSeconds = 25
	maxGenerationSeconds  = 60
)

// EstimateGenerationTime estimates generation seconds from prompt complexity:
// 25s base, +5s per matched keyword, capped at 60s.
func EstimateGenerationTime(prompt string) int {
	lower := strings.ToLower(prompt)
	total := baseGenerationSeconds
	for _, kw := range complexityKeywords {
		if strings.Contains(lower, kw) {
			total += 5
		}
	}
	if total > maxGenerationSeconds {
		return maxGenerationSeconds
	}
	return total
}
