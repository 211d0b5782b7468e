// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package directory

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound is returned when the directory has no source for the
// requested slug.
var ErrSourceNotFound = errors.New("source not found")

// TransportError covers every failure that is not a definitive NotFound:
// connection errors, timeouts, unexpected status codes, undecodable bodies.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("directory request to %s failed: %s", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
