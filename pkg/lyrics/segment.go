package lyrics

// Segment represents a timestamped span of lyric text, either transcribed
// or produced by manual alignment.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// AlignedSegment is a Segment produced by manual-lyrics alignment.
// Matched is false when the timestamp was interpolated instead of taken
// from a reference segment.
type AlignedSegment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Matched    bool    `json:"matched"`
	Similarity float64 `json:"similarity"`
}
