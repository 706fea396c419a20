package vsnsl

import (
	"fmt"
	"unicode/utf8"
)

// MultiEncode layers the single-lock transform once per lock, in forward
// order. Recovering the original text requires the full sequence in order.
//
// Every layer after the first re-encodes a digit string, so sequences
// longer than one require the table to map all of 0–9; that is checked
// up front and fails with ErrDigitsNotMapped.
func (c *Codec) MultiEncode(locks []int, text string) (string, error) {
	if len(locks) == 0 {
		return "", ErrEmptyLockSequence
	}
	t, err := c.activeTable()
	if err != nil {
		return "", err
	}
	if len(locks) > 1 && !t.HasDigits() {
		return "", fmt.Errorf("%w: %d locks require digit re-encoding", ErrDigitsNotMapped, len(locks))
	}
	start := c.clock.Now()

	result := text
	for _, lock := range locks {
		result, err = encodeWith(t, result, lock)
		if err != nil {
			c.observe(opMultiEncode, start, 0, err)
			return "", err
		}
	}
	c.observe(opMultiEncode, start, utf8.RuneCountInString(text), nil)
	c.stats.Encodes.Add(1)
	return result, nil
}

// MultiDecode reverses MultiEncode by peeling layers off in reverse lock
// order: the last lock applied is the first removed.
func (c *Codec) MultiDecode(locks []int, encoded string) (string, error) {
	if len(locks) == 0 {
		return "", ErrEmptyLockSequence
	}
	t, err := c.activeTable()
	if err != nil {
		return "", err
	}
	if len(locks) > 1 && !t.HasDigits() {
		return "", fmt.Errorf("%w: %d locks require digit re-encoding", ErrDigitsNotMapped, len(locks))
	}
	start := c.clock.Now()

	result := encoded
	for i := len(locks) - 1; i >= 0; i-- {
		result, err = decodeWith(t, result, locks[i])
		if err != nil {
			c.observe(opMultiDecode, start, 0, err)
			return "", err
		}
	}
	c.observe(opMultiDecode, start, utf8.RuneCountInString(result), nil)
	c.stats.Decodes.Add(1)
	return result, nil
}
