package services

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	processedCap  = 100
	processedKeep = 50
)

// ProcessedOrders remembers which orders this process already printed.
// Once it grows past its cap it is pruned down to the most recent entries.
type ProcessedOrders struct {
	mu   sync.Mutex
	lru  *lru.Cache[string, struct{}]
	max  int
	keep int
}

func NewProcessedOrders() *ProcessedOrders {
	return newProcessedOrders(processedCap, processedKeep)
}

func newProcessedOrders(max, keep int) *ProcessedOrders {
	// one spare slot so the cache never evicts on its own
	c, err := lru.New[string, struct{}](max + 1)
	if err != nil {
		panic(err)
	}
	return &ProcessedOrders{lru: c, max: max, keep: keep}
}

func (p *ProcessedOrders) Add(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lru.Add(id, struct{}{})
	if p.lru.Len() > p.max {
		for p.lru.Len() > p.keep {
			p.lru.RemoveOldest()
		}
	}
}

func (p *ProcessedOrders) Contains(id string) bool {
	return p.lru.Contains(id)
}

func (p *ProcessedOrders) Len() int {
	return p.lru.Len()
}
