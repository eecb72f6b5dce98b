package pipeline

import (
	"crypto/rand"
	"io"
	"sync"
	"time"
)

// Run IDs are ULIDs: 48-bit millisecond timestamp followed by 80 random bits,
// Crockford Base32 encoded to 26 characters so they sort by start time.

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

type runIDSource struct {
	mu      sync.Mutex
	entropy io.Reader
	lastMs  uint64
	lastRnd [10]byte
}

var runIDs = &runIDSource{entropy: rand.Reader}

// newRunID returns a ULID for t. IDs minted within the same millisecond
// increment the random part so they stay strictly ordered.
func (s *runIDSource) newRunID(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := uint64(t.UnixMilli())
	if ms == s.lastMs {
		for i := len(s.lastRnd) - 1; i >= 0; i-- {
			s.lastRnd[i]++
			if s.lastRnd[i] != 0 {
				break
			}
		}
	} else {
		s.lastMs = ms
		if _, err := io.ReadFull(s.entropy, s.lastRnd[:]); err != nil {
			clear(s.lastRnd[:])
		}
	}

	var b [16]byte
	for i := 0; i < 6; i++ {
		b[i] = byte(ms >> (40 - 8*i))
	}
	copy(b[6:], s.lastRnd[:])
	return encodeULID(b)
}

// encodeULID writes the 128 bits as 26 base32 digits, most significant
// first. The leading digit carries only 3 bits.
func encodeULID(b [16]byte) string {
	var out [26]byte
	bit := 0
	for i := range out {
		width := 5
		if i == 0 {
			width = 3
		}
		v := 0
		for j := 0; j < width; j++ {
			v = v<<1 | int(b[bit/8]>>(7-bit%8)&1)
			bit++
		}
		out[i] = crockford[v]
	}
	return string(out[:])
}
