package printer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/utils"
)

const DefaultRawPort = 9100

// Scanner looks for raw-print listeners on a /24 network.
type Scanner struct {
	Port    int
	Workers int
	Timeout time.Duration
	Probe   func(ctx context.Context, ip string, port int, timeout time.Duration) bool
}

func NewScanner() *Scanner {
	return &Scanner{
		Port:    DefaultRawPort,
		Workers: 50,
		Timeout: 300 * time.Millisecond,
		Probe:   utils.Probe,
	}
}

// Scan probes subnet.1 to subnet.254 and returns the addresses that
// answered, sorted by host number.
func (s *Scanner) Scan(ctx context.Context, subnet string) []string {
	ipChan := make(chan int)
	foundChan := make(chan int, 254)
	var wg sync.WaitGroup

	for i := 0; i < s.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for host := range ipChan {
				if s.Probe(ctx, fmt.Sprintf("%s.%d", subnet, host), s.Port, s.Timeout) {
					foundChan <- host
				}
			}
		}()
	}

feed:
	for i := 1; i <= 254; i++ {
		select {
		case ipChan <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(ipChan)
	wg.Wait()
	close(foundChan)

	var hosts []int
	for h := range foundChan {
		hosts = append(hosts, h)
	}
	sort.Ints(hosts)

	found := make([]string, len(hosts))
	for i, h := range hosts {
		found[i] = fmt.Sprintf("%s.%d", subnet, h)
	}
	return found
}

// DiscoverLocal scans the /24 of the first non-loopback IPv4 address.
func (s *Scanner) DiscoverLocal(ctx context.Context) (subnet string, found []string, err error) {
	localIP, err := utils.DetectLocalIP()
	if err != nil {
		return "", nil, fmt.Errorf("detect local ip: %w", err)
	}
	subnet, err = utils.Subnet24(localIP)
	if err != nil {
		return "", nil, err
	}
	return subnet, s.Scan(ctx, subnet), nil
}
