package vsnsl_test

import (
	"strings"
	"testing"

	"github.com/AndrewDonelson/vsnsl"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func benchNewCodec(b *testing.B, cfg vsnsl.Config) *vsnsl.Codec {
	b.Helper()
	c, err := vsnsl.NewCodec(cfg)
	if err != nil {
		b.Fatal(err)
	}
	return c
}

// ── Codec benchmarks ──────────────────────────────────────────────────────────

func BenchmarkCodec_EncodeData(b *testing.B) {
	c := benchNewCodec(b, vsnsl.Config{})
	defer c.Close()
	text := strings.Repeat("the quick brown fox ", 8)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.EncodeData(text, 7)
	}
}

func BenchmarkCodec_DecodeData(b *testing.B) {
	c := benchNewCodec(b, vsnsl.Config{})
	defer c.Close()
	enc, err := c.EncodeData(strings.Repeat("the quick brown fox ", 8), 7)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.DecodeData(enc, 7)
	}
}

func BenchmarkCodec_EncodeData_Memo_Hit(b *testing.B) {
	c := benchNewCodec(b, vsnsl.Config{
		MemoPool: vsnsl.MemoPoolConfig{Enabled: true, MaxEntries: 4096},
	})
	defer c.Close()
	text := strings.Repeat("the quick brown fox ", 8)
	if _, err := c.EncodeData(text, 7); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = c.EncodeData(text, 7)
		}
	})
}

func BenchmarkCodec_EncodeBatch(b *testing.B) {
	c := benchNewCodec(b, vsnsl.Config{})
	defer c.Close()
	texts := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.EncodeBatch(texts, 3)
	}
}

func BenchmarkCodec_MultiEncode(b *testing.B) {
	c := benchNewCodec(b, vsnsl.Config{})
	defer c.Close()
	locks := []int{1, 2, 3}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.MultiEncode(locks, "hello world")
	}
}

func BenchmarkCodec_Stats(b *testing.B) {
	c := benchNewCodec(b, vsnsl.Config{})
	defer c.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Stats()
	}
}
