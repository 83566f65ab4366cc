// Package handid generates unique identifiers for tracked hands. An id is a
// UUIDv7 encoded as a 26-character Crockford base32 string, so ids sort
// lexicographically in the order the hands were opened.
package handid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// New returns an id for a hand opened now.
func New() string {
	return At(time.Now())
}

// At returns an id whose timestamp component is taken from t. The remaining
// bits are random, so two hands opened in the same millisecond still get
// distinct ids.
func At(t time.Time) string {
	var uuid [16]byte

	ms := t.UnixMilli()
	uuid[0] = byte(ms >> 40)
	uuid[1] = byte(ms >> 32)
	uuid[2] = byte(ms >> 24)
	uuid[3] = byte(ms >> 16)
	uuid[4] = byte(ms >> 8)
	uuid[5] = byte(ms)

	if _, err := rand.Read(uuid[6:]); err != nil {
		panic("handid: " + err.Error())
	}

	// UUIDv7 version and variant bits.
	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return encode(uuid)
}

// encode packs 128 bits into 26 base32 characters, 5 bits per character,
// padded with two trailing zero bits.
func encode(data [16]byte) string {
	var out [26]byte
	for i := range out {
		bit := i * 5
		byteIdx, bitIdx := bit/8, bit%8

		var v uint8
		if bitIdx <= 3 {
			v = (data[byteIdx] >> (3 - bitIdx)) & 0x1f
		} else {
			v = (data[byteIdx] << (bitIdx - 3)) & 0x1f
			if byteIdx+1 < 16 {
				v |= data[byteIdx+1] >> (11 - bitIdx)
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Validate reports whether id looks like an id produced by this package.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("hand id must be 26 characters, got %d", len(id))
	}
	// The encoding spreads 128 bits over 130, so the first character can
	// only carry 3 significant bits.
	if id[0] > '7' {
		return fmt.Errorf("hand id %q out of range", id)
	}
	for _, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("hand id %q contains invalid character %q", id, c)
		}
	}
	return nil
}
