package tour

import (
	"context"
	"strconv"
	"strings"
)

// Completion flag defaults.
const (
	CompletionKey   = "onboarding_completed_v1"
	CompletionValue = "1"
)

// PersistenceGateway is the durable key-value capability holding the
// completion flag. Get reports ok=false for a missing key.
type PersistenceGateway interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// NotificationResult is the outcome of a permission request.
type NotificationResult struct {
	Success bool
}

// NotificationGateway requests permission to send notifications. It is best
// effort: neither failure nor denial changes the tour's own progress.
type NotificationGateway interface {
	Request(ctx context.Context) (NotificationResult, error)
}

type noNotifications struct{}

func (noNotifications) Request(context.Context) (NotificationResult, error) {
	return NotificationResult{}, nil
}

// IsCompleted reports whether a stored flag value means the tour has run.
// Anything non-empty counts unless it parses as boolean false.
func IsCompleted(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return true
}
