package metrics_test

import (
	"testing"
	"time"

	"github.com/AndrewDonelson/vsnsl/internal/metrics"
)

func TestNoop_AllMethods(t *testing.T) {
	n := metrics.Noop{}
	n.RecordOp("encode", 12)
	n.RecordError("decode")
	n.RecordLatency("encode", 100*time.Millisecond)
	n.RecordMemoHit("encode")
	n.RecordMemoMiss("decode")
}
