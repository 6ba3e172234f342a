package ai

import (
	"strings"
	"testing"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/models"
	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/lyrics"
)

func TestBuildPromptIncludesStructure(t *testing.T) {
	song := &models.Song{Title: "Test Song", Artist: "Test Artist"}
	segments := []lyrics.Segment{
		{Start: 20, End: 23, Text: "first line"},
		{Start: 24, End: 27, Text: "second line"},
		{Start: 50, End: 53, Text: "after the break"},
	}
	structure := &lyrics.StructureResult{
		Sections: []lyrics.Section{
			{Type: lyrics.SectionVerse, Label: "VERSE 1", Start: 20, End: 27,
				Lines: []string{"first line", "second line"}},
			{Type: lyrics.SectionChorus, Label: "CHORUS", Start: 50, End: 53,
				Lines: []string{"after the break"}},
		},
		RepeatedSections: map[int][]int{},
	}

	c := NewClient("test-key", "test-model")
	prompt := c.buildPrompt(song, segments, structure, 120)

	for _, want := range []string{
		`"Test Song" by Test Artist`,
		"VERSE 1 (20s - 27s): first line / second line",
		"CHORUS (50s - 53s): after the break",
		// First lyric at 20s > 10s, so the intro is instrumental.
		"INSTRUMENTAL INTRO: 0s - 20s",
		// Lyrics end at 53s, duration 120s, gap > 15s.
		"INSTRUMENTAL OUTRO: 53s - 120s",
		// Gap from 27s to 50s is > 8s.
		"INSTRUMENTAL BREAK: 27s - 50s",
		"step_touch",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptRepeatedSections(t *testing.T) {
	song := &models.Song{Title: "Repeats", Artist: "Someone"}
	structure := &lyrics.StructureResult{
		Sections: []lyrics.Section{
			{Type: lyrics.SectionChorus, Label: "CHORUS", Start: 30, End: 40, Lines: []string{"hook"}},
			{Type: lyrics.SectionChorus, Label: "CHORUS (repeat)", Start: 70, End: 80, Lines: []string{"hook"}},
		},
		RepeatedSections: map[int][]int{0: {1}},
	}

	c := NewClient("test-key", "test-model")
	prompt := c.buildPrompt(song, nil, structure, 100)

	if !strings.Contains(prompt, "CHORUS (repeat) at 70s = SAME as CHORUS at 30s") {
		t.Errorf("prompt missing repeated-section cross-reference:\n%s", prompt)
	}
}

func TestParseMoveSequence(t *testing.T) {
	response := "Here is your routine:\n```json\n" +
		`[{"moveId": "step_touch", "timestamp": 5, "beats": 8},` +
		` {"moveId": "clap", "timestamp": 10, "beats": 4}]` +
		"\n```\nEnjoy!"

	routine, err := parseMoveSequence(response)
	if err != nil {
		t.Fatalf("parseMoveSequence failed: %v", err)
	}
	if len(routine) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(routine))
	}
	if routine[0].MoveID != "step_touch" || routine[0].Timestamp != 5 || routine[0].Beats != 8 {
		t.Errorf("unexpected first move: %+v", routine[0])
	}
}

func TestParseMoveSequenceDropsUnknownMoves(t *testing.T) {
	response := `[{"moveId": "moonwalk", "timestamp": 5, "beats": 8},
		{"moveId": "clap", "timestamp": 10, "beats": 4}]`

	routine, err := parseMoveSequence(response)
	if err != nil {
		t.Fatalf("parseMoveSequence failed: %v", err)
	}
	if len(routine) != 1 || routine[0].MoveID != "clap" {
		t.Errorf("expected only clap to survive, got %+v", routine)
	}
}

func TestParseMoveSequenceNoArray(t *testing.T) {
	if _, err := parseMoveSequence("I cannot generate a routine for this song."); err == nil {
		t.Error("expected error for response without JSON array")
	}
}

func TestFallbackRoutine(t *testing.T) {
	routine := FallbackRoutine(180)
	if len(routine) == 0 {
		t.Fatal("fallback routine is empty")
	}

	prev := 0.0
	for _, m := range routine {
		if m.Timestamp < 5 || m.Timestamp >= 170 {
			t.Errorf("move at %fs outside expected range", m.Timestamp)
		}
		if m.Timestamp <= prev && prev != 0 {
			t.Errorf("moves out of order at %fs", m.Timestamp)
		}
		if m.Beats != 4 && m.Beats != 8 {
			t.Errorf("unexpected beat count %d", m.Beats)
		}
		prev = m.Timestamp
	}
}
