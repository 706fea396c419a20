package vsnsl

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AndrewDonelson/vsnsl/internal/charset"
)

// Operation names used for metrics and structured log events.
const (
	opEncode      = "encode"
	opDecode      = "decode"
	opEncodeBatch = "encode_batch"
	opDecodeBatch = "decode_batch"
	opMultiEncode = "multi_encode"
	opMultiDecode = "multi_decode"
	opConvert     = "convert"
)

// ────────────────────────────────────────────────────────────────────────────
// Public single-string operations
// ────────────────────────────────────────────────────────────────────────────

// EncodeData encodes text under the given lock: each character's code is
// shifted by lock and written as a zero-padded group of the table's code
// width. The whole operation fails atomically; no partial output is
// returned. An empty input encodes to an empty string.
func (c *Codec) EncodeData(text string, lock int) (string, error) {
	t, err := c.activeTable()
	if err != nil {
		return "", err
	}
	start := c.clock.Now()

	if c.memo != nil {
		if out, ok := c.memo.Get(memoKey('e', lock, text)); ok {
			c.metrics.RecordMemoHit(opEncode)
			c.stats.Encodes.Add(1)
			return out, nil
		}
		c.metrics.RecordMemoMiss(opEncode)
	}

	out, err := encodeWith(t, text, lock)
	c.observe(opEncode, start, utf8.RuneCountInString(text), err)
	if err != nil {
		return "", err
	}
	c.stats.Encodes.Add(1)
	if c.memo != nil {
		c.memo.Set(memoKey('e', lock, text), out)
	}
	return out, nil
}

// DecodeData reverses EncodeData: the encoded string is split into
// fixed-width digit groups, each group is shifted back by lock and resolved
// to its character. An empty input decodes to an empty string.
func (c *Codec) DecodeData(encoded string, lock int) (string, error) {
	t, err := c.activeTable()
	if err != nil {
		return "", err
	}
	start := c.clock.Now()

	if c.memo != nil {
		if out, ok := c.memo.Get(memoKey('d', lock, encoded)); ok {
			c.metrics.RecordMemoHit(opDecode)
			c.stats.Decodes.Add(1)
			return out, nil
		}
		c.metrics.RecordMemoMiss(opDecode)
	}

	out, err := decodeWith(t, encoded, lock)
	c.observe(opDecode, start, len(encoded)/t.Width(), err)
	if err != nil {
		return "", err
	}
	c.stats.Decodes.Add(1)
	if c.memo != nil {
		c.memo.Set(memoKey('d', lock, encoded), out)
	}
	return out, nil
}

// Encode encodes text under the configured default lock.
func (c *Codec) Encode(text string) (string, error) {
	return c.EncodeData(text, c.cfg.DefaultLock)
}

// Decode decodes encoded text under the configured default lock.
func (c *Codec) Decode(encoded string) (string, error) {
	return c.DecodeData(encoded, c.cfg.DefaultLock)
}

// ConvertData re-locks encoded data: it decodes under oldLock and encodes
// the result under newLock, so the output decodes with newLock alone.
func (c *Codec) ConvertData(encoded string, oldLock, newLock int) (string, error) {
	t, err := c.activeTable()
	if err != nil {
		return "", err
	}
	start := c.clock.Now()

	plain, err := decodeWith(t, encoded, oldLock)
	if err == nil {
		var out string
		out, err = encodeWith(t, plain, newLock)
		if err == nil {
			c.observe(opConvert, start, utf8.RuneCountInString(plain), nil)
			return out, nil
		}
	}
	c.observe(opConvert, start, 0, err)
	return "", err
}

// ────────────────────────────────────────────────────────────────────────────
// Core transform
// ────────────────────────────────────────────────────────────────────────────

// encodeWith runs the single-lock transform against one table snapshot.
func encodeWith(t *charset.Table, text string, lock int) (string, error) {
	if text == "" {
		return "", nil
	}
	width := t.Width()
	var b strings.Builder
	b.Grow(utf8.RuneCountInString(text) * width)
	for i, r := range text {
		code, ok := t.Code(r)
		if !ok {
			return "", fmt.Errorf("%w: %q at byte %d", ErrUnknownCharacter, r, i)
		}
		shifted := code + lock
		if shifted < 0 || shifted > t.Limit() {
			return "", fmt.Errorf("%w: %q shifts to %d, width %d", ErrLockOverflow, r, shifted, width)
		}
		appendPadded(&b, shifted, width)
	}
	return b.String(), nil
}

// decodeWith reverses encodeWith against one table snapshot.
func decodeWith(t *charset.Table, encoded string, lock int) (string, error) {
	if encoded == "" {
		return "", nil
	}
	width := t.Width()
	if len(encoded)%width != 0 {
		return "", fmt.Errorf("%w: length %d, width %d", ErrMalformedLength, len(encoded), width)
	}
	var b strings.Builder
	b.Grow(len(encoded) / width)
	for i := 0; i < len(encoded); i += width {
		group := encoded[i : i+width]
		n := 0
		for j := 0; j < width; j++ {
			d := group[j]
			if d < '0' || d > '9' {
				return "", fmt.Errorf("%w: group %q at offset %d", ErrMalformedDigits, group, i)
			}
			n = n*10 + int(d-'0')
		}
		code := n - lock
		r, ok := t.Char(code)
		if !ok {
			return "", fmt.Errorf("%w: group %q yields code %d", ErrUnknownCode, group, code)
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// appendPadded writes n zero-padded to the given width.
// Codes are validated against the table limit before this is called, so n
// never needs more than width digits.
func appendPadded(b *strings.Builder, n, width int) {
	s := strconv.Itoa(n)
	for pad := width - len(s); pad > 0; pad-- {
		b.WriteByte('0')
	}
	b.WriteString(s)
}

// memoKey builds the memo cache key for an operation, lock, and input.
func memoKey(op byte, lock int, s string) string {
	return string(op) + ":" + strconv.Itoa(lock) + ":" + s
}

// observe records latency, counters, and a structured event for one call.
func (c *Codec) observe(op string, start time.Time, chars int, err error) {
	c.metrics.RecordLatency(op, c.clock.Now().Sub(start))
	if err != nil {
		c.stats.Errors.Add(1)
		c.metrics.RecordError(op)
		c.logger.Error("operation failed", "op", op, "error", err)
		return
	}
	c.metrics.RecordOp(op, chars)
	c.logger.Debug("operation complete", "op", op, "chars", chars)
}
