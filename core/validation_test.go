package core

import (
	"errors"
	"testing"
)

func TestValidateDocumentGroup(t *testing.T) {
	tests := []struct {
		name    string
		group   *DocumentGroup
		wantErr error
	}{
		{
			name:    "valid group",
			group:   &DocumentGroup{ID: "doc1", Sentences: []string{"a b"}},
			wantErr: nil,
		},
		{
			name:    "valid empty group",
			group:   &DocumentGroup{ID: "doc1"},
			wantErr: nil,
		},
		{
			name:    "empty labels for empty group",
			group:   &DocumentGroup{ID: "doc1", Labels: []float64{}},
			wantErr: nil,
		},
		{
			name:    "nil group",
			group:   nil,
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing identifier",
			group:   &DocumentGroup{Sentences: []string{"a"}},
			wantErr: ErrMissingIdentifier,
		},
		{
			name:    "too many labels",
			group:   &DocumentGroup{ID: "doc1", Sentences: []string{"a"}, Labels: []float64{0, 1}},
			wantErr: ErrLabelMismatch,
		},
		{
			name:    "empty labels for non-empty group",
			group:   &DocumentGroup{ID: "doc1", Sentences: []string{"a"}, Labels: []float64{}},
			wantErr: ErrLabelMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentGroup(tt.group)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocumentGroup() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateDocumentGroup() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocumentGroup() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMembership(t *testing.T) {
	tests := []struct {
		name    string
		m       Membership
		wantErr bool
	}{
		{name: "yes", m: MembershipYes},
		{name: "no", m: MembershipNo},
		{name: "unlabeled", m: MembershipUnlabeled},
		{name: "maybe", m: Membership("maybe"), wantErr: true},
		{name: "uppercase", m: Membership("YES"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMembership(tt.m)

			if tt.wantErr && err == nil {
				t.Error("ValidateMembership() error = nil, want error")
			}

			if !tt.wantErr && err != nil {
				t.Errorf("ValidateMembership() error = %v, want nil", err)
			}

			if err != nil && !errors.Is(err, ErrInvalidMembership) {
				t.Errorf("ValidateMembership() error = %v, want %v", err, ErrInvalidMembership)
			}
		})
	}
}

func TestValidatePairRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *PairRecord
		wantErr error
	}{
		{
			name:   "valid record",
			record: &PairRecord{DocID: "doc1", Sentence: "a b", Summary: MembershipYes},
		},
		{
			name:   "valid unlabeled record with ID 0",
			record: &PairRecord{Id: 0, DocID: "doc1", Sentence: "a b"},
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing doc id",
			record:  &PairRecord{Sentence: "a b"},
			wantErr: ErrMissingIdentifier,
		},
		{
			name:    "negative position",
			record:  &PairRecord{DocID: "doc1", Position: -1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad membership",
			record:  &PairRecord{DocID: "doc1", Summary: "perhaps"},
			wantErr: ErrInvalidMembership,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePairRecord(tt.record)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePairRecord() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePairRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
