package lyrics

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// whisperSegment is one segment from Whisper's JSON output.
type whisperSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// whisperOutput is the shape of Whisper's JSON output file.
type whisperOutput struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
	Language string           `json:"language"`
}

// Transcription holds the cleaned result of a Whisper run.
type Transcription struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
	Source   string    `json:"source"`
}

// Transcribe runs the Whisper CLI on an audio file and returns lyric
// segments with noise/music markers filtered out.
// Requires whisper to be installed: pip install openai-whisper
func Transcribe(audioPath, model string) (*Transcription, error) {
	if model == "" {
		model = "small"
	}

	outputDir := filepath.Dir(audioPath)
	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonOutput := filepath.Join(outputDir, baseName+".json")

	cmd := exec.Command("whisper",
		audioPath,
		"--model", model,
		"--output_format", "json",
		"--output_dir", outputDir,
		"--initial_prompt", "Song lyrics: ",
		"--temperature", "0",
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("whisper failed: %w\nOutput: %s", err, string(output))
	}

	data, err := os.ReadFile(jsonOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to read whisper output: %w", err)
	}

	var raw whisperOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse whisper output: %w", err)
	}

	result := &Transcription{
		Language: raw.Language,
		Source:   "whisper",
	}
	if result.Language == "" {
		result.Language = "en"
	}

	var texts []string
	for _, seg := range raw.Segments {
		text := strings.TrimSpace(seg.Text)
		if IsNoiseSegment(text) {
			continue
		}
		result.Segments = append(result.Segments, Segment{
			Start: round2(seg.Start),
			End:   round2(seg.End),
			Text:  text,
		})
		texts = append(texts, text)
	}
	result.Text = strings.Join(texts, " ")

	return result, nil
}

// IsNoiseSegment reports whether a transcribed segment is a noise or
// music marker rather than actual lyrics.
func IsNoiseSegment(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))

	noise := []string{
		"music", "music playing", "[music]", "(music)", "instrumental",
		"[instrumental]", "♪", "♫", "...", "", "applause", "silence",
		"song lyrics", "lyrics", "singing", "[singing]", "(singing)",
	}
	for _, n := range noise {
		if text == n {
			return true
		}
	}

	stripped := strings.ReplaceAll(text, "music", "")
	stripped = strings.ReplaceAll(stripped, " ", "")
	stripped = strings.ReplaceAll(stripped, ",", "")
	if stripped == "" {
		return true
	}

	if len(text) < 2 {
		return true
	}

	// Whisper tends to emit "music music music" on long instrumentals.
	if strings.Count(text, "music") > 1 {
		return true
	}

	return false
}

// LyricGaps returns spans between consecutive segments longer than
// minGap seconds. Used to flag instrumental breaks to the choreographer.
func LyricGaps(segments []Segment, minGap float64) [][2]float64 {
	var gaps [][2]float64
	for i := 0; i < len(segments)-1; i++ {
		gapStart := segments[i].End
		gapEnd := segments[i+1].Start
		if gapEnd-gapStart > minGap {
			gaps = append(gaps, [2]float64{math.Floor(gapStart), math.Floor(gapEnd)})
		}
	}
	return gaps
}
