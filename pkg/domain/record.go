package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Record is a stored lineation outcome, addressed by the fingerprint of the
// description it was produced from.
type Record struct {
	Key         string    `json:"key"`
	Machine     string    `json:"machine"`
	Tapes       int       `json:"tapes"`
	States      int       `json:"states"`
	Transitions int       `json:"transitions"`
	Output      string    `json:"output"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewRecord summarizes l. output is the encoded flattened machine.
func NewRecord(key string, l *Lineation, output []byte) *Record {
	states := 0
	for _, f := range l.Frontiers {
		states += len(f)
	}
	return &Record{
		Key:         key,
		Machine:     l.Source.Name(),
		Tapes:       l.Tapes,
		States:      states,
		Transitions: l.Flat.Len(),
		Output:      string(output),
		CreatedAt:   time.Now().UTC(),
	}
}

// Fingerprint returns the hex SHA-256 of a raw description.
func Fingerprint(input []byte) string {
	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}
