package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// VerseKey addresses a single verse as "<surah>:<ayah>".
type VerseKey struct {
	Surah int
	Ayah  int
}

// ParseVerseKey parses "<surah>:<ayah>". It fails with ErrInvalidVerseKey
// when the string does not split into exactly two integer components.
func ParseVerseKey(s string) (VerseKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return VerseKey{}, fmt.Errorf("%w: %q", ErrInvalidVerseKey, s)
	}

	surah, err := strconv.Atoi(parts[0])
	if err != nil {
		return VerseKey{}, fmt.Errorf("%w: %q", ErrInvalidVerseKey, s)
	}
	ayah, err := strconv.Atoi(parts[1])
	if err != nil {
		return VerseKey{}, fmt.Errorf("%w: %q", ErrInvalidVerseKey, s)
	}

	return VerseKey{Surah: surah, Ayah: ayah}, nil
}

// String returns the textual "<surah>:<ayah>" form.
func (k VerseKey) String() string {
	return fmt.Sprintf("%d:%d", k.Surah, k.Ayah)
}

// Order returns the verse's integer order key: surah*1000 + ayah.
// Ordering is preserved across surah boundaries as long as ayah numbers
// stay below 1000, which holds for the Quran's structure. The encoding is
// shared with already-published metadata filters and must not change.
func (k VerseKey) Order() int {
	return k.Surah*1000 + k.Ayah
}

// VerseKeyToOrder converts a textual verse key to its order key.
func VerseKeyToOrder(s string) (int, error) {
	key, err := ParseVerseKey(s)
	if err != nil {
		return 0, err
	}
	return key.Order(), nil
}

// OrderToVerseKey recovers the verse key from an order key.
// Total over all integers; the arithmetic inverse of Order.
func OrderToVerseKey(order int) VerseKey {
	return VerseKey{Surah: order / 1000, Ayah: order % 1000}
}
