package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrBackendUnavailable signals a transport-level failure reaching the
// storefront backend, at any stage.
var ErrBackendUnavailable = errors.New("storefront backend unreachable")

// BackendError is a non-2xx rejection from the storefront backend carrying
// the optional detail payload from the response body.
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend rejected request (status %d)", e.StatusCode)
}

// Unauthorized reports the credentials-not-recognized signal that triggers
// auto-provisioning.
func (e *BackendError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}
