package tasks

import (
	"strings"

	"github.com/google/uuid"
)

const idLength = 9

// NewID returns a short random mission identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
}
