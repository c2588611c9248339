package edge

import "github.com/pkg/errors"

var (
	// ErrNoRecords is returned for events that carry no CloudFront record.
	ErrNoRecords = errors.New("edge event has no records")
	// ErrMissingHost is returned when the request has no usable host header.
	ErrMissingHost = errors.New("edge request has no host header")
	// ErrBodyTooLarge is returned when the encoded response body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("generated response body exceeds the edge limit")
)
