// Package attempt generates identifiers for submission attempts.
package attempt

import "github.com/google/uuid"

// NewID returns a unique identifier tagged onto one submission attempt so
// its log lines and notification can be correlated.
func NewID() string {
	return uuid.NewString()
}
