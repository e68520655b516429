// Package cuid2 generates short, URL-safe, prefixed identifiers.
package cuid2

import (
	crypto_rand "crypto/rand"
	"strings"
	"time"
)

// Base62 alphabet: 0-9, A-Z, a-z
const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	timestampLength     = 6
	defaultSortedRandom = 18
	defaultPureRandom   = 24
)

// EncodeTimestamp encodes Unix seconds as a fixed width base62 string, so that
// encoded values sort the same way as the timestamps.
func EncodeTimestamp(timestampSeconds int64) string {
	n := timestampSeconds
	result := make([]byte, timestampLength)
	for i := timestampLength - 1; i >= 0; i-- {
		result[i] = base62Alphabet[n%62]
		n /= 62
	}
	return string(result)
}

// randomString returns length base62 characters from crypto/rand.
// 6 bit samples at or above 62 are rejected to keep the distribution uniform.
func randomString(length int) string {
	buf := make([]byte, length+length/4+4)
	var b strings.Builder
	b.Grow(length)

	for b.Len() < length {
		if _, err := crypto_rand.Read(buf); err != nil {
			panic("failed to read random bytes: " + err.Error())
		}
		for _, v := range buf {
			if v &= 0x3f; v < 62 {
				b.WriteByte(base62Alphabet[v])
				if b.Len() == length {
					break
				}
			}
		}
	}
	return b.String()
}

// Options for New.
type Options struct {
	// Unsorted drops the timestamp prefix.
	Unsorted bool
	// RandomLength of the random part (default 18 when sorted, 24 otherwise).
	RandomLength int
}

// New returns "<prefix>_<id>". By default the id starts with an encoded
// timestamp so ids created later sort after earlier ones (at second resolution).
//
//	New("req", Options{})                // "req_0CL2KwaB3cD5eF7gH9iJ1k"
//	New("req", Options{Unsorted: true})  // "req_8kJ2mN4pQ6rS0tU3vW5xY7zA"
func New(prefix string, opts Options) string {
	if opts.Unsorted {
		if opts.RandomLength <= 0 {
			opts.RandomLength = defaultPureRandom
		}
		return prefix + "_" + randomString(opts.RandomLength)
	}
	if opts.RandomLength <= 0 {
		opts.RandomLength = defaultSortedRandom
	}
	return prefix + "_" + EncodeTimestamp(time.Now().Unix()) + randomString(opts.RandomLength)
}
