package lyrics

import (
	"math"
	"strings"
	"testing"
)

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAlignManualLyricsExactMatches(t *testing.T) {
	reference := []Segment{
		{Start: 0, End: 2, Text: "a"},
		{Start: 5, End: 7, Text: "b"},
		{Start: 10, End: 12, Text: "c"},
	}

	got := AlignManualLyrics("a\nb\nc", reference, 20)

	if len(got) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(got))
	}

	wantStarts := []float64{0, 5, 10}
	for i, seg := range got {
		if !seg.Matched {
			t.Errorf("segment %d: expected matched=true", i)
		}
		if seg.Similarity != 1.0 {
			t.Errorf("segment %d: similarity = %v, want 1.0", i, seg.Similarity)
		}
		if seg.Start != wantStarts[i] {
			t.Errorf("segment %d: start = %v, want %v", i, seg.Start, wantStarts[i])
		}
	}
}

func TestAlignManualLyricsEvenDistribution(t *testing.T) {
	got := AlignManualLyrics("x\ny", nil, 100)

	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(got))
	}

	// start_time=10, end_time=max(100-20, 40)=80, time_per_line=35
	if got[0].Start != 10 || got[0].End != 44.5 {
		t.Errorf("line 0 = [%v, %v], want [10, 44.5]", got[0].Start, got[0].End)
	}
	if got[1].Start != 45 || got[1].End != 79.5 {
		t.Errorf("line 1 = [%v, %v], want [45, 79.5]", got[1].Start, got[1].End)
	}
	for i, seg := range got {
		if seg.Matched {
			t.Errorf("segment %d: expected matched=false for even distribution", i)
		}
	}
}

func TestAlignManualLyricsEmptyInput(t *testing.T) {
	if got := AlignManualLyrics("", nil, 100); len(got) != 0 {
		t.Errorf("expected empty result for empty lyrics, got %d segments", len(got))
	}
	if got := AlignManualLyrics("\n\n  \n", nil, 100); len(got) != 0 {
		t.Errorf("expected empty result for blank lines, got %d segments", len(got))
	}
}

func TestAlignManualLyricsOutputLengthMatchesLines(t *testing.T) {
	manual := "first line of song\n\nsecond line here\nthird line goes on\n"
	reference := []Segment{
		{Start: 3, End: 6, Text: "first line of song"},
		{Start: 30, End: 33, Text: "unrelated gibberish entirely"},
	}

	got := AlignManualLyrics(manual, reference, 60)
	if len(got) != 3 {
		t.Fatalf("expected 3 segments (blank lines dropped), got %d", len(got))
	}

	for i := 1; i < len(got); i++ {
		if got[i].Start < got[i-1].End {
			t.Errorf("segments %d and %d overlap: [%v,%v] then [%v,%v]",
				i-1, i, got[i-1].Start, got[i-1].End, got[i].Start, got[i].End)
		}
	}
}

func TestAlignManualLyricsInterpolation(t *testing.T) {
	// "hello world" claims the only reference; the second line has no
	// candidate left and gets interpolated after the previous segment.
	reference := []Segment{
		{Start: 10, End: 12, Text: "hello world"},
	}

	got := AlignManualLyrics("hello world\nzzz qqq", reference, 60)
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(got))
	}

	if !got[0].Matched || got[0].Start != 10 {
		t.Errorf("line 0 should match reference at 10s, got %+v", got[0])
	}
	if got[1].Matched {
		t.Errorf("line 1 should be interpolated, got %+v", got[1])
	}
	if got[1].Start != 12.5 || got[1].End != 15.5 {
		t.Errorf("line 1 = [%v, %v], want [12.5, 15.5]", got[1].Start, got[1].End)
	}
}

func TestAlignManualLyricsOverlapRepair(t *testing.T) {
	// Line 0 finds no match and is interpolated from the first reference
	// start (6s, 3s duration). Line 1 matches the reference at 7s, which
	// lands inside the interpolated span; the repair pass pushes it out.
	reference := []Segment{
		{Start: 6, End: 9, Text: "xxx"},
		{Start: 7, End: 8, Text: "hello world"},
	}

	got := AlignManualLyrics("qqq zzz\nhello world", reference, 60)
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(got))
	}

	if got[0].Start != 6 || got[0].End != 9 {
		t.Errorf("segment 0 = [%v, %v], want [6, 9]", got[0].Start, got[0].End)
	}
	if !approxEq(got[1].Start, 9.1) {
		t.Errorf("segment 1 start = %v, want 9.1 (bumped past previous end)", got[1].Start)
	}
	if !approxEq(got[1].End, 11.1) {
		t.Errorf("segment 1 end = %v, want 11.1 (re-extended after bump)", got[1].End)
	}
}

func TestAlignManualLyricsPositionWindow(t *testing.T) {
	// The perfect text match sits at the end of the reference list, far
	// outside the 30% position window for the first of many lines, so it
	// must not be used.
	var reference []Segment
	for i := 0; i < 9; i++ {
		reference = append(reference, Segment{
			Start: float64(i * 10),
			End:   float64(i*10 + 3),
			Text:  "filler filler filler",
		})
	}
	reference = append(reference, Segment{Start: 90, End: 93, Text: "hello world"})

	lines := make([]string, 10)
	lines[0] = "hello world"
	for i := 1; i < 10; i++ {
		lines[i] = "some other words"
	}

	got := AlignManualLyrics(strings.Join(lines, "\n"), reference, 120)
	if len(got) != 10 {
		t.Fatalf("expected 10 segments, got %d", len(got))
	}

	for _, seg := range got {
		if seg.Text == "hello world" && seg.Matched && seg.Start == 90 {
			t.Errorf("line 0 matched a reference outside the position window: %+v", seg)
		}
	}
}
