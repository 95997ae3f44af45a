package printer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScanner_Scan(t *testing.T) {
	var probes atomic.Int32
	s := NewScanner()
	s.Probe = func(ctx context.Context, ip string, port int, timeout time.Duration) bool {
		probes.Add(1)
		assert.Equal(t, DefaultRawPort, port)
		return ip == "10.1.2.42" || ip == "10.1.2.7"
	}

	found := s.Scan(context.Background(), "10.1.2")

	assert.Equal(t, []string{"10.1.2.7", "10.1.2.42"}, found)
	assert.Equal(t, int32(254), probes.Load())
}

func TestScanner_ScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScanner()
	s.Workers = 1
	s.Probe = func(ctx context.Context, ip string, port int, timeout time.Duration) bool { return true }

	found := s.Scan(ctx, "10.1.2")
	assert.Less(t, len(found), 254)
}
