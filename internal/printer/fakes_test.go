package printer

import (
	"context"
	"os"
	"sync"
)

type call struct {
	name string
	args []string
	file []byte
}

type result struct {
	stdout, stderr string
	err            error
}

// fakeRunner records commands and answers them from a script. The last
// argument of each command is read as the job file when it exists.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []call
	results []result
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := call{name: name, args: args}
	for _, a := range args {
		if data, err := os.ReadFile(a); err == nil {
			c.file = data
		}
	}
	f.calls = append(f.calls, c)

	if len(f.results) == 0 {
		return "", "", nil
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.stdout, r.stderr, r.err
}
