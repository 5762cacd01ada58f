package core

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func mustGroup(t *testing.T, id DocID, sentences []string, labels ...float64) DocumentGroup {
	t.Helper()
	g, err := NewDocumentGroup(id, sentences, labels...)
	if err != nil {
		t.Fatalf("NewDocumentGroup(%q) error = %v", id, err)
	}
	return g
}

func TestBroadcastPairs(t *testing.T) {
	tests := []struct {
		name   string
		groups []DocumentGroup
		want   []SentencePair
	}{
		{
			name:   "no groups",
			groups: nil,
			want:   []SentencePair{},
		},
		{
			name: "single group",
			groups: []DocumentGroup{
				{ID: "doc1", Sentences: []string{"a b", "c d"}},
			},
			want: []SentencePair{
				{DocID: "doc1", Sentence: "a b"},
				{DocID: "doc1", Sentence: "c d"},
			},
		},
		{
			name: "empty group contributes nothing",
			groups: []DocumentGroup{
				{ID: "doc1", Sentences: []string{"x"}},
				{ID: "doc2", Sentences: nil},
				{ID: "doc3", Sentences: []string{"y", "z"}},
			},
			want: []SentencePair{
				{DocID: "doc1", Sentence: "x"},
				{DocID: "doc3", Sentence: "y"},
				{DocID: "doc3", Sentence: "z"},
			},
		},
		{
			name: "duplicates are kept",
			groups: []DocumentGroup{
				{ID: "doc1", Sentences: []string{"same", "same"}},
				{ID: "doc1", Sentences: []string{"same"}},
			},
			want: []SentencePair{
				{DocID: "doc1", Sentence: "same"},
				{DocID: "doc1", Sentence: "same"},
				{DocID: "doc1", Sentence: "same"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BroadcastPairs(tt.groups)
			if err != nil {
				t.Fatalf("BroadcastPairs() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BroadcastPairs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBroadcastPairs_LengthAndOrder(t *testing.T) {
	groups := []DocumentGroup{
		{ID: "a", Sentences: []string{"1", "2", "3"}},
		{ID: "b", Sentences: []string{}},
		{ID: "c", Sentences: []string{"4"}},
		{ID: "d", Sentences: []string{"5", "6"}},
	}

	var want []SentencePair
	total := 0
	for _, g := range groups {
		total += len(g.Sentences)
		for _, s := range g.Sentences {
			want = append(want, SentencePair{DocID: g.ID, Sentence: s})
		}
	}

	got, err := BroadcastPairs(groups)
	if err != nil {
		t.Fatalf("BroadcastPairs() error = %v", err)
	}
	if len(got) != total {
		t.Fatalf("len(BroadcastPairs()) = %d, want %d", len(got), total)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BroadcastPairs() = %v, want %v", got, want)
	}
}

func TestBroadcastPairs_DoesNotMutate(t *testing.T) {
	sentences := []string{"one two", "three"}
	groups := []DocumentGroup{{ID: "doc", Sentences: sentences}}

	got, err := BroadcastPairs(groups)
	if err != nil {
		t.Fatalf("BroadcastPairs() error = %v", err)
	}
	got[0].Sentence = "changed"

	if sentences[0] != "one two" {
		t.Errorf("input sentence mutated to %q", sentences[0])
	}
}

func TestBroadcastPairs_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		groups  []DocumentGroup
		wantErr error
	}{
		{
			name:    "missing identifier",
			groups:  []DocumentGroup{{ID: "ok", Sentences: []string{"a"}}, {Sentences: []string{"b"}}},
			wantErr: ErrMissingIdentifier,
		},
		{
			name:    "labels misaligned",
			groups:  []DocumentGroup{{ID: "doc", Sentences: []string{"a", "b"}, Labels: []float64{1}}},
			wantErr: ErrLabelMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BroadcastPairs(tt.groups)
			if err == nil {
				t.Fatalf("BroadcastPairs() = %v, want error", got)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("BroadcastPairs() error = %v, want %v", err, ErrInvalidInput)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("BroadcastPairs() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClassifySummary(t *testing.T) {
	if got := ClassifySummary(0); got != MembershipNo {
		t.Errorf("ClassifySummary(0) = %q, want %q", got, MembershipNo)
	}
	if got := ClassifySummary(0.0); got != MembershipNo {
		t.Errorf("ClassifySummary(0.0) = %q, want %q", got, MembershipNo)
	}
	if got := ClassifySummary(math.Copysign(0, -1)); got != MembershipNo {
		t.Errorf("ClassifySummary(-0.0) = %q, want %q", got, MembershipNo)
	}
	if got := ClassifySummary(uint8(0)); got != MembershipNo {
		t.Errorf("ClassifySummary(uint8(0)) = %q, want %q", got, MembershipNo)
	}

	for _, v := range []float64{1, -1, 0.5, -0.001, 42, math.Inf(1), math.NaN()} {
		if got := ClassifySummary(v); got != MembershipYes {
			t.Errorf("ClassifySummary(%v) = %q, want %q", v, got, MembershipYes)
		}
	}
	for _, v := range []int{1, -1, 7, math.MaxInt} {
		if got := ClassifySummary(v); got != MembershipYes {
			t.Errorf("ClassifySummary(%v) = %q, want %q", v, got, MembershipYes)
		}
	}
}

func TestIsSentence(t *testing.T) {
	tests := []struct {
		fragment string
		want     bool
	}{
		{"hello world", true},
		{"hello", false},
		{"", false},
		{"a b c", true},
		{" hello", true},
		{"hello ", true},
		{"hello\tworld", false},
		{"\nFirst sentence here", true},
		{"word", false},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			if got := IsSentence(tt.fragment); got != tt.want {
				t.Errorf("IsSentence(%q) = %v, want %v", tt.fragment, got, tt.want)
			}
		})
	}
}

func TestIsSentenceMode(t *testing.T) {
	tests := []struct {
		fragment string
		mode     SplitMode
		want     bool
	}{
		{"hello\tworld", SplitSpace, false},
		{"hello\tworld", SplitWhitespace, true},
		{" hello ", SplitSpace, true},
		{" hello ", SplitWhitespace, false},
		{"a  b", SplitWhitespace, true},
		{"", SplitWhitespace, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String()+"/"+tt.fragment, func(t *testing.T) {
			if got := IsSentenceMode(tt.fragment, tt.mode); got != tt.want {
				t.Errorf("IsSentenceMode(%q, %v) = %v, want %v", tt.fragment, tt.mode, got, tt.want)
			}
		})
	}
}

func TestParseSplitMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SplitMode
		wantErr bool
	}{
		{"space", SplitSpace, false},
		{"", SplitSpace, false},
		{"Whitespace", SplitWhitespace, false},
		{"tabs", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSplitMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSplitMode) {
					t.Errorf("ParseSplitMode(%q) error = %v, want %v", tt.in, err, ErrInvalidSplitMode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSplitMode(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSplitMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanLeadingNewline(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{"leading newline", "\nhello world", "hello world"},
		{"no newline", "hello world", "hello world"},
		{"newline only", "\n", ""},
		{"only first character removed", "\n\nhello", "\nhello"},
		{"newline inside first token", "a\nb c", "a\nb c"},
		{"newline in later token", "hello \nworld", "hello \nworld"},
		{"leading space", " \nhello", " \nhello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanLeadingNewline(tt.fragment)
			if err != nil {
				t.Fatalf("CleanLeadingNewline(%q) error = %v", tt.fragment, err)
			}
			if got != tt.want {
				t.Errorf("CleanLeadingNewline(%q) = %q, want %q", tt.fragment, got, tt.want)
			}
		})
	}
}

func TestCleanLeadingNewline_Empty(t *testing.T) {
	_, err := CleanLeadingNewline("")
	if !errors.Is(err, ErrEmptyFragment) {
		t.Errorf("CleanLeadingNewline(\"\") error = %v, want %v", err, ErrEmptyFragment)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("CleanLeadingNewline(\"\") error = %v, want %v", err, ErrInvalidInput)
	}
}

func TestEndToEnd(t *testing.T) {
	groups := []DocumentGroup{
		mustGroup(t, "doc1", []string{"\nFirst sentence here", "word"}),
		mustGroup(t, "doc2", []string{}),
	}

	pairs, err := BroadcastPairs(groups)
	if err != nil {
		t.Fatalf("BroadcastPairs() error = %v", err)
	}
	wantPairs := []SentencePair{
		{DocID: "doc1", Sentence: "\nFirst sentence here"},
		{DocID: "doc1", Sentence: "word"},
	}
	if !reflect.DeepEqual(pairs, wantPairs) {
		t.Fatalf("BroadcastPairs() = %v, want %v", pairs, wantPairs)
	}

	checks := make([]bool, len(pairs))
	for i, p := range pairs {
		checks[i] = IsSentence(p.Sentence)
	}
	if !reflect.DeepEqual(checks, []bool{true, false}) {
		t.Errorf("IsSentence over pairs = %v, want [true false]", checks)
	}

	cleaned, err := CleanLeadingNewline(pairs[0].Sentence)
	if err != nil {
		t.Fatalf("CleanLeadingNewline() error = %v", err)
	}
	if cleaned != "First sentence here" {
		t.Errorf("CleanLeadingNewline() = %q, want %q", cleaned, "First sentence here")
	}
}
