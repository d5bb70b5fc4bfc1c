// Package id generates short references a person can read back over the
// phone. They use Crockford's base32 alphabet, which has no I, L, O or U.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"strings"
	"time"
)

const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// referenceLen is the number of base32 characters, without the dash.
const referenceLen = 10

// NewReference returns a reference such as "0K7ZP-9QX3M". The first half
// encodes the creation second, so references from the same period share a
// prefix. The second half is random.
func NewReference() string {
	return newReference(time.Now(), rand.Reader)
}

func newReference(now time.Time, r io.Reader) string {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		binary.BigEndian.PutUint32(b[:], uint32(now.UnixNano()))
	}

	const half = 25
	ts := uint64(now.Unix()) & (1<<half - 1)
	rnd := uint64(binary.BigEndian.Uint32(b[:])) & (1<<half - 1)
	v := ts<<half | rnd

	var out [referenceLen + 1]byte
	pos := len(out) - 1
	for i := range referenceLen {
		out[pos] = alphabet[v&0x1F]
		v >>= 5
		pos--
		if i == referenceLen/2-1 {
			out[pos] = '-'
			pos--
		}
	}
	return string(out[:])
}

// IsReference reports whether s has the shape of a reference. Lowercase
// letters are accepted.
func IsReference(s string) bool {
	if len(s) != referenceLen+1 || s[referenceLen/2] != '-' {
		return false
	}
	for i, c := range strings.ToUpper(s) {
		if i == referenceLen/2 {
			continue
		}
		if !strings.ContainsRune(alphabet, c) {
			return false
		}
	}
	return true
}
