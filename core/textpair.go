package core

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Label is any numeric summary label. Zero means not in the summary.
type Label interface {
	constraints.Integer | constraints.Float
}

// SplitMode selects how fragments are cut into tokens.
type SplitMode int

const (
	// SplitSpace splits on the single ASCII space only. Tabs and runs of
	// spaces are not collapsed, so "a  b" has three tokens and "a\tb" one.
	SplitSpace SplitMode = iota
	// SplitWhitespace splits on any run of Unicode whitespace.
	SplitWhitespace
)

// String returns the flag spelling of the mode.
func (m SplitMode) String() string {
	switch m {
	case SplitSpace:
		return "space"
	case SplitWhitespace:
		return "whitespace"
	}
	return fmt.Sprintf("SplitMode(%d)", int(m))
}

// ParseSplitMode parses "space" or "whitespace".
func ParseSplitMode(s string) (SplitMode, error) {
	switch strings.ToLower(s) {
	case "space", "":
		return SplitSpace, nil
	case "whitespace":
		return SplitWhitespace, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSplitMode, s)
}

// BroadcastPairs pairs every sentence with its group's identifier.
// Groups are walked in order and sentences within a group in order, so the
// result equals a manual flattening of groups. Inputs are not mutated.
func BroadcastPairs(groups []DocumentGroup) ([]SentencePair, error) {
	total := 0
	for i := range groups {
		if err := ValidateDocumentGroup(&groups[i]); err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
		total += len(groups[i].Sentences)
	}

	pairs := make([]SentencePair, 0, total)
	for _, group := range groups {
		for _, sentence := range group.Sentences {
			pairs = append(pairs, SentencePair{DocID: group.ID, Sentence: sentence})
		}
	}
	return pairs, nil
}

// ClassifySummary tags a label as summary membership. Every nonzero value,
// NaN included, is "yes"; only an exact zero is "no".
func ClassifySummary[N Label](label N) Membership {
	if label != 0 {
		return MembershipYes
	}
	return MembershipNo
}

// IsSentence reports whether fragment has more than one space-delimited token.
func IsSentence(fragment string) bool {
	return len(strings.Split(fragment, " ")) > 1
}

// IsSentenceMode is IsSentence with a selectable split mode.
func IsSentenceMode(fragment string, mode SplitMode) bool {
	if mode == SplitWhitespace {
		return len(strings.Fields(fragment)) > 1
	}
	return IsSentence(fragment)
}

// CleanLeadingNewline drops the first character of fragment when its first
// space-delimited token begins with a newline. Other fragments are returned
// unchanged. Empty fragments have no first token and are rejected.
func CleanLeadingNewline(fragment string) (string, error) {
	if fragment == "" {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptyFragment)
	}
	first, _, _ := strings.Cut(fragment, " ")
	if strings.HasPrefix(first, "\n") {
		return fragment[1:], nil
	}
	return fragment, nil
}
