// Package services holds shared plumbing for the external service clients:
// the error taxonomy that keeps "not found downstream" distinguishable from
// real API failures, and the HTTP client seam used for testing.
package services
