package common

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewULID returns a lexicographically sortable unique id.
func NewULID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// NewVideoID returns a video id in the form pov_<ULID>.
func NewVideoID() (string, error) {
	id, err := NewULID()
	if err != nil {
		return "", err
	}
	return "pov_" + id, nil
}

// NewSessionID returns a caller session id when the client did not supply one.
func NewSessionID() string {
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
