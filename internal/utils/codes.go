package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewAccessCode returns an opaque uppercase code of n characters, suitable for
// gallery access and testimonial verification. Codes compare
// case-insensitively, so they are generated uppercase.
func NewAccessCode(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken
			panic("access code generation: " + err.Error())
		}
		b[i] = codeAlphabet[idx.Int64()]
	}
	return string(b)
}

// NewRecordID builds a record identifier in the historical
// "<prefix>-<unix ms>-<suffix>" shape.
func NewRecordID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), strings.ToLower(NewAccessCode(7)))
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFilename strips everything that is not a letter, digit, dot or dash.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}
