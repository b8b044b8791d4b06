package services

import "net/http"

// HTTPDoer describes the HTTP client used by the service clients. Tests
// substitute httptest-backed implementations.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
