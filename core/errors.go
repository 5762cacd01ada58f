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

import "errors"

// Domain validation errors
var (
	// ErrInvalidInput indicates an input violated the minimal shape contract.
	// Every other validation error in this package is wrapped together with it.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingIdentifier indicates a DocumentGroup has no identifier.
	ErrMissingIdentifier = errors.New("document identifier cannot be empty")

	// ErrLabelMismatch indicates a DocumentGroup carries labels that do not
	// line up with its sentences.
	ErrLabelMismatch = errors.New("labels must align with sentences")

	// ErrEmptyFragment indicates an empty string was passed where a first
	// token is required.
	ErrEmptyFragment = errors.New("fragment cannot be empty")

	// ErrInvalidSplitMode indicates an unknown SplitMode value.
	ErrInvalidSplitMode = errors.New("invalid split mode")

	// ErrInvalidMembership indicates a Membership value other than yes, no or unlabeled.
	ErrInvalidMembership = errors.New("invalid summary membership")
)
