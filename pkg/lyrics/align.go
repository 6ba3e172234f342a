package lyrics

import (
	"math"
	"sort"
	"strings"
)

// Alignment tuning. The position window is a hard cutoff: a reference
// segment more than 30% away from a line's expected position is never
// considered, no matter how similar its text is.
const (
	alignPositionWindow  = 0.3
	alignAcceptThreshold = 0.1
	alignLineDuration    = 3.0
)

// AlignManualLyrics maps manually pasted lyric lines onto reference
// timestamps from a transcription. The pasted text is trusted; the
// reference timing is trusted; the reference text may be garbled.
//
// Matching is greedy in line order: the first line to claim a reference
// segment keeps it. This is deliberately not an optimal assignment --
// downstream output depends on the greedy behavior.
func AlignManualLyrics(manualLyrics string, reference []Segment, duration float64) []AlignedSegment {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(manualLyrics), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	if len(lines) == 0 {
		return []AlignedSegment{}
	}

	if len(reference) == 0 {
		return distributeEvenly(lines, duration)
	}

	segments := make([]AlignedSegment, 0, len(lines))
	used := make(map[int]bool)

	for i, line := range lines {
		bestIdx := -1
		bestSimilarity := 0.0

		// Only consider reference segments near the line's relative
		// position in the song.
		expectedPosition := float64(i) / float64(len(lines))

		for j, ref := range reference {
			if used[j] {
				continue
			}

			refPosition := float64(j) / float64(len(reference))
			positionPenalty := math.Abs(refPosition - expectedPosition)
			if positionPenalty > alignPositionWindow {
				continue
			}

			adjusted := Similarity(line, ref.Text) * (1 - positionPenalty*0.5)
			if adjusted > bestSimilarity {
				bestSimilarity = adjusted
				bestIdx = j
			}
		}

		if bestIdx >= 0 && bestSimilarity > alignAcceptThreshold {
			ref := reference[bestIdx]
			used[bestIdx] = true
			segments = append(segments, AlignedSegment{
				Start:      ref.Start,
				End:        ref.End,
				Text:       line,
				Matched:    true,
				Similarity: round2(bestSimilarity),
			})
			continue
		}

		// No usable match: interpolate after the previously emitted
		// segment, or fall back to the first reference timestamp.
		var start float64
		if len(segments) > 0 {
			start = segments[len(segments)-1].End + 0.5
		} else {
			start = reference[0].Start
		}

		segments = append(segments, AlignedSegment{
			Start:      round2(start),
			End:        round2(start + alignLineDuration),
			Text:       line,
			Matched:    false,
			Similarity: 0,
		})
	}

	// Interpolated segments can land out of order relative to matched
	// ones, so sort then repair any overlaps in one forward pass.
	sort.SliceStable(segments, func(a, b int) bool {
		return segments[a].Start < segments[b].Start
	})

	for i := 1; i < len(segments); i++ {
		if segments[i].Start < segments[i-1].End {
			segments[i].Start = segments[i-1].End + 0.1
			if segments[i].End <= segments[i].Start {
				segments[i].End = segments[i].Start + 2.0
			}
		}
	}

	return segments
}

// distributeEvenly spreads lines across the song when no reference
// timestamps exist at all.
func distributeEvenly(lines []string, duration float64) []AlignedSegment {
	startTime := 10.0
	endTime := math.Max(duration-20, startTime+30)
	timePerLine := (endTime - startTime) / float64(len(lines))

	segments := make([]AlignedSegment, 0, len(lines))
	for i, line := range lines {
		start := startTime + float64(i)*timePerLine
		segments = append(segments, AlignedSegment{
			Start:   round2(start),
			End:     round2(start + timePerLine - 0.5),
			Text:    line,
			Matched: false,
		})
	}

	return segments
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
