package ingestion

import "errors"

var (
	// ErrPairRepositoryRequired is returned when a pair repository is not provided.
	ErrPairRepositoryRequired = errors.New("pair repository required")

	// ErrCheckpointRepositoryRequired is returned when a checkpoint repository is not provided.
	ErrCheckpointRepositoryRequired = errors.New("checkpoint repository required")

	// ErrInvalidOption is returned when a pipeline option is out of range.
	ErrInvalidOption = errors.New("invalid pipeline option")
)
