package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidCoordinate   = errors.New("invalid coordinate")
	ErrInvalidBusinessType = errors.New("invalid business type")
	ErrUpstreamUnavailable = errors.New("place data source unavailable")
)
