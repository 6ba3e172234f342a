package lyrics

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Hello World", "hello world"},
		{"punctuation", "Hello, World! (yeah)", "hello world yeah"},
		{"apostrophe", "don't stop believin'", "dont stop believin"},
		{"whitespace collapse", "  too   many\tspaces \n here ", "too many spaces here"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Hello, World!", "  spaced   out  ", "already normalized", ""}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSimilarityIdentical(t *testing.T) {
	if got := Similarity("hello world", "hello world"); got != 1.0 {
		t.Errorf("Similarity(a,a) = %v, want 1.0", got)
	}
	if got := Similarity("Hello, World!", "hello world"); got != 1.0 {
		t.Errorf("Similarity should ignore case and punctuation, got %v", got)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"hello world", "hello there"},
		{"one two three", "three four five"},
		{"", "something"},
		{"a b c d", "a"},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q,%q)=%v but reversed=%v", p[0], p[1], ab, ba)
		}
	}
}

func TestSimilarityEmpty(t *testing.T) {
	if got := Similarity("", "anything at all"); got != 0.0 {
		t.Errorf("Similarity with empty input = %v, want 0", got)
	}
	if got := Similarity("...", "anything"); got != 0.0 {
		t.Errorf("Similarity with punctuation-only input = %v, want 0", got)
	}
	if got := Similarity("", ""); got != 0.0 {
		t.Errorf("Similarity of two empty strings = %v, want 0", got)
	}
}

func TestSimilarityPartialOverlap(t *testing.T) {
	// {hello, world} vs {hello, there}: intersection 1, union 3.
	got := Similarity("hello world", "hello there")
	want := 1.0 / 3.0
	if got != want {
		t.Errorf("Similarity = %v, want %v", got, want)
	}

	if got := Similarity("aaa bbb", "ccc ddd"); got != 0.0 {
		t.Errorf("disjoint word sets should score 0, got %v", got)
	}
}

func TestSimilarityDuplicateWords(t *testing.T) {
	// Word sets are unique: repeated words don't change the score.
	if got := Similarity("la la la la", "la"); got != 1.0 {
		t.Errorf("Similarity with repeated words = %v, want 1.0", got)
	}
}
