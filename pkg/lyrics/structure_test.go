package lyrics

import "testing"

func TestAnalyzeStructureEmpty(t *testing.T) {
	result := AnalyzeStructure(nil, 180)

	if len(result.Sections) != 0 {
		t.Errorf("expected no sections, got %d", len(result.Sections))
	}
	if len(result.EnergyMap) != 0 {
		t.Errorf("expected empty energy map, got %d entries", len(result.EnergyMap))
	}
	if len(result.RepeatedSections) != 0 {
		t.Errorf("expected no repeated sections, got %d", len(result.RepeatedSections))
	}
}

func TestAnalyzeStructureChorusDetection(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 3, Text: "hello world"},
		{Start: 4, End: 7, Text: "hello world"},
		{Start: 10, End: 13, Text: "something new"},
	}

	result := AnalyzeStructure(segments, 40)

	if len(result.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(result.Sections))
	}

	chorus := result.Sections[0]
	if chorus.Type != SectionChorus {
		t.Errorf("section 0 type = %q, want chorus", chorus.Type)
	}
	if chorus.Start != 0 || chorus.End != 7 {
		t.Errorf("chorus span = [%v, %v], want [0, 7]", chorus.Start, chorus.End)
	}
	if len(chorus.Lines) != 2 {
		t.Errorf("chorus has %d lines, want 2", len(chorus.Lines))
	}

	verse := result.Sections[1]
	if verse.Type != SectionVerse {
		t.Errorf("section 1 type = %q, want verse", verse.Type)
	}
	if verse.Start != 10 || verse.End != 13 {
		t.Errorf("verse span = [%v, %v], want [10, 13]", verse.Start, verse.End)
	}
	if verse.Label != "VERSE 1" {
		t.Errorf("verse label = %q, want VERSE 1", verse.Label)
	}

	if len(result.RepeatedSections) != 0 {
		t.Errorf("expected no repeated sections, got %v", result.RepeatedSections)
	}
}

func TestAnalyzeStructureGapSplitsSections(t *testing.T) {
	segments := []Segment{
		{Start: 20, End: 23, Text: "one of a kind line"},
		{Start: 24, End: 27, Text: "another singular line here"},
		{Start: 33, End: 36, Text: "after the long break"},
		{Start: 37, End: 40, Text: "more fresh words follow"},
	}

	result := AnalyzeStructure(segments, 200)

	if len(result.Sections) != 2 {
		t.Fatalf("expected 2 sections split on >4s gap, got %d", len(result.Sections))
	}
	if result.Sections[0].Label != "VERSE 1" || result.Sections[1].Label != "VERSE 2" {
		t.Errorf("labels = %q, %q; want VERSE 1, VERSE 2",
			result.Sections[0].Label, result.Sections[1].Label)
	}
	if result.Sections[0].End != 27 {
		t.Errorf("first section end = %v, want 27 (previous segment's end)", result.Sections[0].End)
	}
}

func TestAnalyzeStructurePreChorusAndChorusRepeat(t *testing.T) {
	segments := []Segment{
		{Start: 16, End: 18, Text: "verse line one here"},
		{Start: 19, End: 21, Text: "verse line two here"},
		{Start: 22, End: 24, Text: "verse line three here"},
		{Start: 25, End: 27, Text: "verse line four here"},
		{Start: 28, End: 30, Text: "verse line five here"},
		{Start: 35, End: 37, Text: "get ready for it"},
		{Start: 38, End: 40, Text: "shine bright tonight yeah"},
		{Start: 60, End: 62, Text: "shine bright tonight yeah"},
	}

	result := AnalyzeStructure(segments, 100)

	wantLabels := []string{"VERSE 1", "PRE-CHORUS", "CHORUS", "CHORUS (repeat)"}
	if len(result.Sections) != len(wantLabels) {
		t.Fatalf("expected %d sections, got %d", len(wantLabels), len(result.Sections))
	}
	for i, want := range wantLabels {
		if result.Sections[i].Label != want {
			t.Errorf("section %d label = %q, want %q", i, result.Sections[i].Label, want)
		}
	}

	if result.Sections[1].Type != SectionPreChorus {
		t.Errorf("short verse before chorus should become pre-chorus, got %q", result.Sections[1].Type)
	}

	// The two chorus sections share content, so the second is indexed as
	// a repeat of the first.
	repeats, ok := result.RepeatedSections[2]
	if !ok || len(repeats) != 1 || repeats[0] != 3 {
		t.Errorf("RepeatedSections = %v, want {2: [3]}", result.RepeatedSections)
	}
	if result.Sections[3].RepeatOf == nil || *result.Sections[3].RepeatOf != 2 {
		t.Errorf("section 3 RepeatOf = %v, want 2", result.Sections[3].RepeatOf)
	}

	wantEnergy := []float64{0.5, 0.7, 0.9, 0.9}
	for i, span := range result.EnergyMap {
		if span.Energy != wantEnergy[i] {
			t.Errorf("energy[%d] = %v, want %v", i, span.Energy, wantEnergy[i])
		}
	}
}

func TestAnalyzeStructureBridge(t *testing.T) {
	segments := []Segment{
		{Start: 20, End: 23, Text: "first verse alpha beta"},
		{Start: 24, End: 26, Text: "second line gamma delta"},
		{Start: 70, End: 73, Text: "totally different words now"},
		{Start: 74, End: 76, Text: "nothing like the rest"},
	}

	result := AnalyzeStructure(segments, 100)

	if len(result.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(result.Sections))
	}
	if result.Sections[1].Type != SectionBridge {
		t.Errorf("unique late section type = %q, want bridge", result.Sections[1].Type)
	}
	if result.Sections[1].Label != "BRIDGE" {
		t.Errorf("label = %q, want BRIDGE", result.Sections[1].Label)
	}
	if result.EnergyMap[1].Energy != 0.75 {
		t.Errorf("bridge energy = %v, want 0.75", result.EnergyMap[1].Energy)
	}
}

func TestAnalyzeStructureIntroOutro(t *testing.T) {
	segments := []Segment{
		{Start: 5, End: 7, Text: "hey hey hey yeah"},
		{Start: 50, End: 52, Text: "goodbye now my friend"},
	}

	result := AnalyzeStructure(segments, 60)

	if len(result.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(result.Sections))
	}
	if result.Sections[0].Type != SectionIntro || result.Sections[0].Label != "INTRO" {
		t.Errorf("section 0 = %q/%q, want intro/INTRO",
			result.Sections[0].Type, result.Sections[0].Label)
	}
	if result.Sections[1].Type != SectionOutro || result.Sections[1].Label != "OUTRO" {
		t.Errorf("section 1 = %q/%q, want outro/OUTRO",
			result.Sections[1].Type, result.Sections[1].Label)
	}
}

func TestAnalyzeStructureRepeatedSingleLineSections(t *testing.T) {
	// Two sections with identical single-line content key-match in the
	// repeat index even though they are shorter than the 4-line key.
	segments := []Segment{
		{Start: 20, End: 22, Text: "dance all night long"},
		{Start: 40, End: 42, Text: "something in the middle"},
		{Start: 80, End: 82, Text: "dance all night long"},
	}

	result := AnalyzeStructure(segments, 200)

	if len(result.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(result.Sections))
	}

	repeats, ok := result.RepeatedSections[0]
	if !ok || len(repeats) != 1 || repeats[0] != 2 {
		t.Errorf("RepeatedSections = %v, want {0: [2]}", result.RepeatedSections)
	}
	if result.Sections[2].RepeatOf == nil || *result.Sections[2].RepeatOf != 0 {
		t.Errorf("section 2 RepeatOf = %v, want 0", result.Sections[2].RepeatOf)
	}
}

func TestAnalyzeStructureInvariants(t *testing.T) {
	segments := []Segment{
		{Start: 2, End: 5, Text: "opening line of the song"},
		{Start: 6, End: 9, Text: "chorus hook goes here"},
		{Start: 15, End: 18, Text: "chorus hook goes here"},
		{Start: 25, End: 28, Text: "a verse about something"},
		{Start: 40, End: 43, Text: "closing thoughts and words"},
	}

	result := AnalyzeStructure(segments, 55)

	if len(result.Sections) == 0 {
		t.Fatal("expected sections")
	}
	if len(result.EnergyMap) != len(result.Sections) {
		t.Fatalf("energy map entries (%d) != sections (%d)",
			len(result.EnergyMap), len(result.Sections))
	}

	for i, section := range result.Sections {
		if section.End < section.Start {
			t.Errorf("section %d: end %v < start %v", i, section.End, section.Start)
		}
		if section.Label == "" {
			t.Errorf("section %d: empty label", i)
		}
	}

	for i, span := range result.EnergyMap {
		if span.Energy < 0 || span.Energy > 1 {
			t.Errorf("energy[%d] = %v out of [0,1]", i, span.Energy)
		}
		if span.Energy != energyForType(span.Type) {
			t.Errorf("energy[%d] = %v does not match lookup for %q", i, span.Energy, span.Type)
		}
	}
}
