package global

import (
	"context"
	"time"
)

// GetDefaultTimer returns a context bounded by the default timeout for a
// single store call.
func GetDefaultTimer() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
