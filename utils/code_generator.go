package utils

import (
	"crypto/rand"
	mathrand "math/rand"
	"strconv"
	"sync/atomic"
	"time"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// codeCounter disambiguates codes generated within the same nanosecond.
var codeCounter int64

// GenerateRandomCode returns a random string of the given length over
// an uppercase alphanumeric charset.
func GenerateRandomCode(length int) string {
	code := make([]byte, length)

	if _, err := rand.Read(code); err != nil {
		// crypto/rand failed; fall back to a seeded math/rand source.
		r := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
		for i := range code {
			code[i] = codeCharset[r.Intn(len(codeCharset))]
		}
		return string(code)
	}

	for i := range code {
		code[i] = codeCharset[int(code[i])%len(codeCharset)]
	}

	return string(code)
}

// GenerateProspectCode returns a unique reference code for a new
// prospect, e.g. PRS-lx3k2a1-A7QZ.
func GenerateProspectCode() string {
	counter := atomic.AddInt64(&codeCounter, 1)
	randomPart := GenerateRandomCode(4)
	return "PRS-" + strconv.FormatInt(time.Now().UnixNano(), 36) + strconv.FormatInt(counter, 36) + "-" + randomPart
}
