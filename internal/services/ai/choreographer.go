package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/models"
	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/lyrics"
	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/moves"
)

const anthropicAPIURL = "https://api.anthropic.com/v1/messages"

// Client handles AI API calls for choreography generation
type Client struct {
	apiKey string
	model  string
	client *http.Client
}

// NewClient creates a new choreography AI client
func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// GenerateRoutine generates a choreography routine for a song from its
// lyrics structure. Falls back to a basic generated routine when the
// API is unavailable or returns an unusable response.
func (c *Client) GenerateRoutine(song *models.Song, segments []lyrics.Segment,
	structure *lyrics.StructureResult, duration float64) ([]models.ChoreoMove, error) {

	prompt := c.buildPrompt(song, segments, structure, duration)

	response, err := c.callAPI(prompt)
	if err != nil {
		return FallbackRoutine(duration), fmt.Errorf("choreography API call failed: %w", err)
	}

	routine, err := parseMoveSequence(response)
	if err != nil {
		return FallbackRoutine(duration), fmt.Errorf("failed to parse choreography response: %w", err)
	}

	return routine, nil
}

// buildPrompt creates the choreography prompt from the song's structure
// and lyric timing.
func (c *Client) buildPrompt(song *models.Song, segments []lyrics.Segment,
	structure *lyrics.StructureResult, duration float64) string {

	sections := structure.Sections

	var sectionLines []string
	for i, s := range sections {
		if i >= 12 {
			break
		}
		sectionLines = append(sectionLines, fmt.Sprintf("- %s (%.0fs - %.0fs): %s",
			s.Label, s.Start, s.End, strings.Join(firstLines(s.Lines, 3), " / ")))
	}
	sectionsDesc := strings.Join(sectionLines, "\n")
	if sectionsDesc == "" {
		sectionsDesc = "No clear structure detected"
	}

	// Repeated sections reuse the original's moves so the dance is
	// easier to learn.
	var repetitionInfo string
	if len(structure.RepeatedSections) > 0 {
		var b strings.Builder
		b.WriteString("\n\nREPEATED SECTIONS (use SAME moves):")
		for origIdx, repeatIndices := range structure.RepeatedSections {
			if origIdx >= len(sections) {
				continue
			}
			orig := sections[origIdx]
			for _, repIdx := range repeatIndices {
				if repIdx >= len(sections) {
					continue
				}
				rep := sections[repIdx]
				fmt.Fprintf(&b, "\n  - %s at %.0fs = SAME as %s at %.0fs",
					rep.Label, rep.Start, orig.Label, orig.Start)
			}
		}
		repetitionInfo = b.String()
	}

	// Instrumental spans get explicit no-move warnings, derived from
	// where the lyrics actually start, end, and pause.
	var lyricsTiming string
	if len(segments) > 0 {
		firstLyric := segments[0].Start
		lastLyric := segments[len(segments)-1].End

		var b strings.Builder
		fmt.Fprintf(&b, "\nLyrics timing: %.0fs to %.0fs", firstLyric, lastLyric)
		if firstLyric > 10 {
			fmt.Fprintf(&b, "\nINSTRUMENTAL INTRO: 0s - %.0fs (NO MOVES HERE)", firstLyric)
		}
		if duration-lastLyric > 15 {
			fmt.Fprintf(&b, "\nINSTRUMENTAL OUTRO: %.0fs - %.0fs (NO MOVES HERE)", lastLyric, duration)
		}
		for i := 0; i < len(segments)-1; i++ {
			gapStart := segments[i].End
			gapEnd := segments[i+1].Start
			if gapEnd-gapStart > 8 {
				fmt.Fprintf(&b, "\nINSTRUMENTAL BREAK: %.0fs - %.0fs (NO MOVES HERE)", gapStart, gapEnd)
			}
		}
		lyricsTiming = b.String()
	}

	return fmt.Sprintf(`You are a dance choreographer creating a beginner-friendly routine for:
Song: "%s" by %s
Duration: %.0f seconds

Song Structure:
%s
%s
%s

Available moves (use ONLY these IDs):
EASY (1 star): %s
MEDIUM (2 star): %s

Rules:
1. Generate moves every 3-5 seconds ONLY during sections with lyrics
2. INTRO: Use easy moves (step_touch, sway, groove) - but SKIP if instrumental
3. VERSE: Mix of easy and medium moves
4. CHORUS: Higher energy moves
5. BRIDGE: Unique standout moves
6. OUTRO: Wind down with easy moves - but SKIP if instrumental
7. CRITICAL: Do NOT generate moves during INSTRUMENTAL sections marked above
8. CRITICAL: For REPEATED SECTIONS, use the EXACT SAME move sequence as the original section. This makes the dance easier to learn!
9. Vary body parts - don't repeat same type 3x in a row (except for repeated sections)

Return JSON array only:
[
  {"moveId": "step_touch", "timestamp": 5, "beats": 8},
  {"moveId": "clap", "timestamp": 10, "beats": 4},
  ...
]`,
		song.Title, song.Artist, duration,
		sectionsDesc, lyricsTiming, repetitionInfo,
		strings.Join(moves.EasyMoves(), ", "),
		strings.Join(moves.MediumMoves(), ", "),
	)
}

// anthropicRequest represents the Messages API request structure
type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse represents the Messages API response structure
type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// callAPI sends the prompt to the Anthropic Messages API and returns
// the text of the response.
func (c *Client) callAPI(prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("no API key configured")
	}

	reqBody := anthropicRequest{
		Model:     c.model,
		MaxTokens: 2048,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", anthropicAPIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(apiResp.Content) == 0 || apiResp.Content[0].Text == "" {
		return "", fmt.Errorf("empty response from API")
	}

	return apiResp.Content[0].Text, nil
}

var jsonArrayPattern = regexp.MustCompile(`\[[\s\S]*\]`)

// parseMoveSequence extracts the JSON move array from the model's
// response, tolerating surrounding prose and markdown fences.
func parseMoveSequence(response string) ([]models.ChoreoMove, error) {
	match := jsonArrayPattern.FindString(response)
	if match == "" {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var routine []models.ChoreoMove
	if err := json.Unmarshal([]byte(match), &routine); err != nil {
		return nil, fmt.Errorf("failed to parse move sequence: %w", err)
	}

	if len(routine) == 0 {
		return nil, fmt.Errorf("empty move sequence in response")
	}

	// Drop moves with IDs outside the catalog rather than failing the
	// whole routine.
	valid := routine[:0]
	for _, m := range routine {
		if moves.ByID(m.MoveID) != nil {
			valid = append(valid, m)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("no valid move IDs in response")
	}

	return valid, nil
}

// FallbackRoutine generates a basic routine when AI generation fails.
// Easy moves near the start and end, a wider pool in the middle.
func FallbackRoutine(duration float64) []models.ChoreoMove {
	easy := []string{"step_touch", "hip_sway", "clap", "slide", "groove", "sway"}
	medium := []string{"body_roll", "arm_wave", "turn", "jump"}

	var routine []models.ChoreoMove
	timestamp := 5.0
	for timestamp < duration-10 {
		pool := easy
		if timestamp >= 30 && timestamp <= duration-30 {
			pool = append(append([]string{}, easy...), medium...)
		}

		beats := 4
		if rand.Intn(2) == 1 {
			beats = 8
		}

		routine = append(routine, models.ChoreoMove{
			MoveID:    pool[rand.Intn(len(pool))],
			Timestamp: timestamp,
			Beats:     beats,
		})
		timestamp += float64(3 + rand.Intn(4))
	}

	return routine
}

func firstLines(lines []string, n int) []string {
	if len(lines) < n {
		return lines
	}
	return lines[:n]
}
