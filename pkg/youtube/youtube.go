package youtube

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/)([^&\n?#]+)`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// ExtractVideoID extracts a YouTube video ID from a URL or a bare ID.
// Returns an empty string when no ID can be found.
func ExtractVideoID(url string) string {
	for _, pattern := range idPatterns {
		if match := pattern.FindStringSubmatch(url); match != nil {
			return match[1]
		}
	}
	return ""
}

// VideoInfo holds metadata fetched from the YouTube oEmbed API.
type VideoInfo struct {
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	ThumbnailURL string `json:"thumbnail_url"`
	FullTitle    string `json:"full_title"`
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

var (
	bracketedSuffix = regexp.MustCompile(`\s*[\(\[].*[\)\]]`)
	videoNoise      = regexp.MustCompile(`(?i)\s*[\(\[](?:official|lyric|music|video|audio|hd|4k).*[\)\]]`)
)

// FetchVideoInfo fetches title/artist/thumbnail via YouTube's oEmbed
// endpoint and parses "Artist - Title" style titles.
func FetchVideoInfo(videoID string) (*VideoInfo, error) {
	url := fmt.Sprintf(
		"https://www.youtube.com/oembed?url=https://www.youtube.com/watch?v=%s&format=json",
		videoID,
	)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("oembed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed request returned status %d", resp.StatusCode)
	}

	var raw oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode oembed response: %w", err)
	}

	info := &VideoInfo{
		Title:        raw.Title,
		Artist:       raw.AuthorName,
		ThumbnailURL: raw.ThumbnailURL,
		FullTitle:    raw.Title,
	}

	if strings.Contains(info.Title, " - ") {
		parts := strings.SplitN(info.Title, " - ", 2)
		info.Artist = strings.TrimSpace(parts[0])
		info.Title = strings.TrimSpace(bracketedSuffix.ReplaceAllString(parts[1], ""))
	}
	info.Title = strings.TrimSpace(videoNoise.ReplaceAllString(info.Title, ""))

	if info.Title == "" {
		info.Title = "Unknown"
	}
	if info.Artist == "" {
		info.Artist = "Unknown Artist"
	}

	return info, nil
}

// Downloader fetches audio from YouTube via yt-dlp into a cache
// directory. Downloads are cached by video ID.
type Downloader struct {
	CacheDir string
}

// NewDownloader creates a downloader writing into cacheDir.
func NewDownloader(cacheDir string) *Downloader {
	return &Downloader{CacheDir: cacheDir}
}

// CachedAudioPath returns the cached audio file for a video ID, or an
// empty string when no cached file exists.
func (d *Downloader) CachedAudioPath(videoID string) string {
	for _, ext := range []string{"mp3", "webm", "m4a", "opus"} {
		path := filepath.Join(d.CacheDir, videoID+"."+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// DownloadAudio downloads the audio track for a video and returns the
// path to the downloaded file. Returns the cached file when present.
func (d *Downloader) DownloadAudio(videoID string) (string, error) {
	if cached := d.CachedAudioPath(videoID); cached != "" {
		return cached, nil
	}

	if err := os.MkdirAll(d.CacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Download to a unique temp name first so a failed run never leaves
	// a partial file behind at the cached path.
	tempBase := filepath.Join(d.CacheDir, uuid.NewString())
	cmd := exec.Command("yt-dlp",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "0",
		"-o", tempBase+".%(ext)s",
		"--no-playlist",
		"--quiet",
		"https://www.youtube.com/watch?v="+videoID,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w\nOutput: %s", err, string(output))
	}

	for _, ext := range []string{"mp3", "webm", "m4a", "opus"} {
		tempPath := tempBase + "." + ext
		if _, err := os.Stat(tempPath); err == nil {
			finalPath := filepath.Join(d.CacheDir, videoID+"."+ext)
			if err := os.Rename(tempPath, finalPath); err != nil {
				return "", fmt.Errorf("failed to move downloaded audio: %w", err)
			}
			return finalPath, nil
		}
	}

	return "", fmt.Errorf("could not find downloaded audio for %s", videoID)
}
