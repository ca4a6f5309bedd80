// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import "errors"

var (
	// ErrNotFound is returned by Get when no record has the requested id.
	ErrNotFound = errors.New("trademark not found")

	// ErrInvalidRecord is returned when a record lacks an id, name, or
	// jurisdiction, or carries a non-positive class.
	ErrInvalidRecord = errors.New("invalid trademark record")
)
