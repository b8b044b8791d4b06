package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks a resolve miss downstream. Deleting an item that is
	// already gone is benign; callers must not treat this as an API error.
	ErrNotFound = errors.New("not found")
	// ErrTransient marks network or upstream failures worth retrying on a
	// future scheduled run.
	ErrTransient = errors.New("transient failure")
	// ErrConfiguration marks a service that cannot operate as configured.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes service context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, service, operation string, err error) error {
	detail := buildDetail(service, operation)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(service, operation string) string {
	parts := make([]string, 0, 2)
	if service = strings.TrimSpace(service); service != "" {
		parts = append(parts, service)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
