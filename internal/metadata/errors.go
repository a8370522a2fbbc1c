package metadata

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConnectivity marks a network call that failed every retry
	// attempt. Terminates the whole run, not just the current identity.
	ErrConnectivity = errors.New("connectivity failure")
	// ErrConfiguration marks a missing prior artifact or invalid setting.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes operation context while
// tagging it with the provided marker for later classification. The
// marker should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrConnectivity
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "lookup failure"
	}
	return strings.Join(parts, ": ")
}
