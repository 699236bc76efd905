// Package errorspkg provides errors shared by all app layers.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
//
// Repositories log the underlying cause and return ErrInternal so that driver
// details never reach the API.
var ErrInternal = errors.New("internal")
