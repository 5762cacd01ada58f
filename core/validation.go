// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
)

// ValidateDocumentGroup validates a DocumentGroup according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Labels, when present, must have one entry per sentence
//
// NOT validated:
//   - Sentences (an empty group is valid and yields no pairs)
//   - Sentence contents (fragments are filtered later, not rejected)
func ValidateDocumentGroup(group *DocumentGroup) error {
	if group == nil {
		return fmt.Errorf("%w: group is nil", ErrInvalidInput)
	}

	if group.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrMissingIdentifier)
	}

	if group.Labels != nil && len(group.Labels) != len(group.Sentences) {
		return fmt.Errorf("%w: %w: document %q has %d sentences and %d labels",
			ErrInvalidInput, ErrLabelMismatch, group.ID, len(group.Sentences), len(group.Labels))
	}

	return nil
}

// ValidateMembership validates that a Membership has a known value.
func ValidateMembership(m Membership) error {
	switch m {
	case MembershipUnlabeled, MembershipYes, MembershipNo:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidMembership, string(m))
}

// ValidatePairRecord validates a PairRecord before it is stored.
func ValidatePairRecord(record *PairRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidInput)
	}
	if record.DocID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrMissingIdentifier)
	}
	if record.Position < 0 {
		return fmt.Errorf("%w: negative position %d", ErrInvalidInput, record.Position)
	}
	if err := ValidateMembership(record.Summary); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
