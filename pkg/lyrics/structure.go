package lyrics

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Section types assigned by structure analysis.
const (
	SectionIntro     = "intro"
	SectionVerse     = "verse"
	SectionPreChorus = "pre-chorus"
	SectionChorus    = "chorus"
	SectionBridge    = "bridge"
	SectionOutro     = "outro"
)

// Section is a contiguous run of segments sharing a structural role.
type Section struct {
	Type      string   `json:"type"`
	Label     string   `json:"label"`
	Start     float64  `json:"start"`
	End       float64  `json:"end"`
	Lines     []string `json:"lines"`
	LineTexts []string `json:"line_texts"`
	RepeatOf  *int     `json:"repeat_of,omitempty"`
}

// EnergySpan maps a section's time range to an expected choreography
// intensity between 0 and 1.
type EnergySpan struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Energy float64 `json:"energy"`
	Type   string  `json:"type"`
	Label  string  `json:"label"`
}

// StructureResult is the full output of structure analysis.
// RepeatedSections maps a section index to the indices of its repeats,
// so choreography can reuse the same moves for repeated sections.
type StructureResult struct {
	Sections         []Section     `json:"sections"`
	EnergyMap        []EnergySpan  `json:"energy_map"`
	RepeatedSections map[int][]int `json:"repeated_sections"`
	EstimatedBPM     float64       `json:"estimatedBPM,omitempty"`
}

// Segments shorter than this (normalized) are ignored for repetition
// detection. They still belong to whatever section surrounds them.
const minRepetitionLineLen = 5

// Starting a new section requires either a role change or a silence gap
// longer than this many seconds.
const sectionGapSeconds = 4.0

// AnalyzeStructure detects song structure from timestamped lyric
// segments. Lines that appear two or more times are treated as chorus
// lines; everything else starts as verse, then a reclassification pass
// promotes pre-chorus, bridge, intro and outro sections.
func AnalyzeStructure(segments []Segment, duration float64) *StructureResult {
	result := &StructureResult{
		Sections:         []Section{},
		EnergyMap:        []EnergySpan{},
		RepeatedSections: map[int][]int{},
	}

	if len(segments) == 0 {
		return result
	}

	// Pass 1: count line occurrences to find chorus lines.
	occurrences := make(map[string]int)
	for _, seg := range segments {
		norm := Normalize(seg.Text)
		if utf8.RuneCountInString(norm) < minRepetitionLineLen {
			continue
		}
		occurrences[norm]++
	}

	chorusLines := make(map[string]bool)
	for norm, count := range occurrences {
		if count >= 2 {
			chorusLines[norm] = true
		}
	}

	// Pass 2: group consecutive segments into sections.
	var sections []Section
	var current *Section
	verseCount := 0
	chorusCount := 0

	for i, seg := range segments {
		norm := Normalize(seg.Text)

		sectionType := SectionVerse
		if chorusLines[norm] {
			sectionType = SectionChorus
		}

		startNew := false
		if current == nil {
			startNew = true
		} else if current.Type != sectionType {
			startNew = true
		} else if seg.Start-segments[i-1].End > sectionGapSeconds {
			startNew = true
		}

		if startNew {
			if current != nil {
				current.End = segments[i-1].End
				sections = append(sections, *current)
			}

			var label string
			if sectionType == SectionVerse {
				verseCount++
				label = "VERSE " + strconv.Itoa(verseCount)
			} else {
				chorusCount++
				if chorusCount == 1 {
					label = "CHORUS"
				} else {
					label = "CHORUS (repeat)"
				}
			}

			current = &Section{
				Type:  sectionType,
				Label: label,
				Start: seg.Start,
			}
		}

		current.Lines = append(current.Lines, seg.Text)
		current.LineTexts = append(current.LineTexts, norm)
	}

	current.End = segments[len(segments)-1].End
	sections = append(sections, *current)

	// Pass 3: reclassify special sections. Order matters: a section
	// promoted to pre-chorus is no longer a candidate for bridge.
	for i := range sections {
		lineCount := len(sections[i].Lines)

		// A short verse right before a chorus is likely a pre-chorus.
		if sections[i].Type == SectionVerse && lineCount <= 3 && i < len(sections)-1 {
			if sections[i+1].Type == SectionChorus {
				sections[i].Type = SectionPreChorus
				sections[i].Label = "PRE-CHORUS"
			}
		}

		// A textually unique verse late in the song is likely a bridge.
		if sections[i].Type == SectionVerse && sections[i].Start > duration*0.6 {
			content := strings.Join(firstN(sections[i].LineTexts, 3), " ")
			isUnique := true
			for j := range sections {
				if j == i {
					continue
				}
				other := strings.Join(firstN(sections[j].LineTexts, 3), " ")
				if Similarity(content, other) > 0.5 {
					isUnique = false
					break
				}
			}
			if isUnique && lineCount <= 4 {
				sections[i].Type = SectionBridge
				sections[i].Label = "BRIDGE"
			}
		}
	}

	if sections[0].Start < 15 && len(sections[0].Lines) <= 4 && sections[0].Type == SectionVerse {
		sections[0].Type = SectionIntro
		sections[0].Label = "INTRO"
	}

	last := len(sections) - 1
	if sections[last].End > duration-20 && sections[last].Type != SectionChorus {
		sections[last].Type = SectionOutro
		sections[last].Label = "OUTRO"
	}

	// Pass 4: index repeated sections by their first four normalized
	// lines, so repeats can reuse the original's choreography.
	contentMap := make(map[string]int)
	for i := range sections {
		key := strings.Join(firstN(sections[i].LineTexts, 4), " ")
		if origIdx, seen := contentMap[key]; seen {
			result.RepeatedSections[origIdx] = append(result.RepeatedSections[origIdx], i)
			repeatOf := origIdx
			sections[i].RepeatOf = &repeatOf
		} else {
			contentMap[key] = i
		}
	}

	// Pass 5: energy map from section type.
	for _, section := range sections {
		result.EnergyMap = append(result.EnergyMap, EnergySpan{
			Start:  section.Start,
			End:    section.End,
			Energy: energyForType(section.Type),
			Type:   section.Type,
			Label:  section.Label,
		})
	}

	result.Sections = sections
	return result
}

// energyForType returns the fixed choreography-intensity value for a
// section type.
func energyForType(sectionType string) float64 {
	switch sectionType {
	case SectionChorus:
		return 0.9
	case SectionPreChorus:
		return 0.7
	case SectionBridge:
		return 0.75
	case SectionIntro:
		return 0.4
	case SectionOutro:
		return 0.3
	default:
		return 0.5
	}
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		return items
	}
	return items[:n]
}
