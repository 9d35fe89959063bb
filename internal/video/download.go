package video

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// DownloadInfo describes a prepared download for a generated video.
type DownloadInfo struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"downloadUrl"`
	Filename    string `json:"filename"`
	Format      string `json:"format"`
	Quality     string `json:"quality"`
	FileSize    string `json:"fileSize"`
	Resolution  string `json:"resolution"`
	Duration    string `json:"duration"`
}

const fallbackDownloadURL = "https://storage.googleapis.com/workspace-videos/pov-historical-fallback.mp4"

// BuildDownload validates format and quality and assembles the descriptor.
// Validation happens before any URL is produced.
func BuildDownload(videoID, videoURL, prompt, format, quality string, durationSeconds int) (*DownloadInfo, error) {
	if format == "" {
		format = "mp4"
	}
	if quality == "" {
		quality = "hd"
	}
	if format != "mp4" && format != "webm" {
		return nil, newValidationError("Invalid format. Supported formats: mp4, webm")
	}
	if quality != "hd" && quality != "sd" {
		return nil, newValidationError("Invalid quality. Supported qualities: hd, sd")
	}

	if videoURL == "" {
		videoURL = fallbackDownloadURL
	}
	if prompt == "" {
		prompt = "historical video " + videoID
	}

	filename := GenerateFilename(prompt)
	filename = strings.TrimSuffix(filename, ".mp4") + "." + format

	size := "12.5 MB"
	resolution := "1080x1920"
	if quality == "sd" {
		size = "6.8 MB"
		resolution = "720x1280"
	}

	return &DownloadInfo{
		Success:     true,
		DownloadURL: videoURL,
		Filename:    filename,
		Format:      format,
		Quality:     quality,
		FileSize:    size,
		Resolution:  resolution,
		Duration:    fmt.Sprintf("%d seconds", durationSeconds),
	}, nil
}

// GenerateFilename builds a download filename from the prompt: up to four
// significant words, dash-joined, with the current date.
func GenerateFilename(prompt string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(prompt) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	var words []string
	for _, w := range strings.Fields(b.String()) {
		if len(w) > 2 {
			words = append(words, w)
		}
		if len(words) == 4 {
			break
		}
	}
	stamp := time.Now().Format("2006-01-02")
	return fmt.Sprintf("pov-%s-%s.mp4", strings.Join(words, "-"), stamp)
}

// NewMetadata builds file metadata for a finished generation. The file size is
// a placeholder in the 5-15MB range until real encoding exists.
func NewMetadata(title, description string, duration int) *Metadata {
	return &Metadata{
		Title:       title,
		Description: description,
		Duration:    duration,
		Format:      "mp4",
		Resolution:  "1080x1920",
		FileSize:    int64(rand.Intn(10_000_000)) + 5_000_000,
		CreatedAt:   time.Now(),
	}
}

// SubtitleSegment is one timed caption line.
type SubtitleSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// ParseSubtitles wraps a subtitle sentence in a single six second segment.
func ParseSubtitles(subtitleText string) []SubtitleSegment {
	return []SubtitleSegment{{Start: 0, End: 6, Text: subtitleText}}
}

// FormatWebVTT renders subtitle segments as a WebVTT document.
func FormatWebVTT(segments []SubtitleSegment) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for i, seg := range segments {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", vttTime(seg.Start), vttTime(seg.End))
		b.WriteString(seg.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

func vttTime(seconds float64) string {
	whole := int(seconds)
	h := whole / 3600
	m := (whole % 3600) / 60
	s := whole % 60
	ms := int((seconds - float64(whole)) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// FormatFileSize renders a byte count for display.
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%g %s", float64(int(size*100))/100, units[i])
}
