package dataset

import "errors"

var (
	// ErrUnknownFormat is returned for an unsupported export format.
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrInvalidConfig is returned when an export Config fails validation.
	ErrInvalidConfig = errors.New("invalid export config")

	// ErrPairRepositoryRequired is returned when a pair repository is not provided.
	ErrPairRepositoryRequired = errors.New("pair repository required")

	// ErrWriterRequired is returned when an export writer is not provided.
	ErrWriterRequired = errors.New("export writer required")
)
