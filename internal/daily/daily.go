// Package daily picks the shared "word of the day".
//
// Every player sees the same answer for a UTC date. The index into the
// answer list is HMAC-SHA256(salt, YYYY-MM-DD) so the sequence cannot be
// guessed from the list order without the salt.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	dk := DateKey(date)
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Picker returns the daily answer for the current date.
type Picker struct {
	Answers []string
	Salt    string
	Now     func() time.Time // defaults to time.Now
}

// Word returns today's answer, or "" when there are no answers.
func (p Picker) Word() string {
	if len(p.Answers) == 0 {
		return ""
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return p.Answers[WordIndex(now(), p.Salt, len(p.Answers))]
}

// Today returns the date key the picker currently uses.
func (p Picker) Today() string {
	if p.Now != nil {
		return DateKey(p.Now())
	}
	return DateKey(time.Now())
}
