/*
Package randx provides cryptographically secure random selections and unique identifiers.

It is used to pick a display color for each chat user and to tag every transport
connection with a UUID for log correlation.
*/
package randx

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// Palette is the set of display colors handed out to chat users.
var Palette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
	"#008080", "#e6beff", "#9a6324", "#800000", "#aaffc3",
	"#808000", "#ffd8b1", "#000075",
}

// Color returns a random entry from Palette.
// It falls back to the first entry if the system random source fails.
func Color() string {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(Palette))))
	if err != nil {
		return Palette[0]
	}
	return Palette[num.Int64()]
}

// ConnID generates a UUID v4 string identifying one transport connection.
func ConnID() string {
	return uuid.New().String()
}
