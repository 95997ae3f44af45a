package printer

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

const commandTimeout = 30 * time.Second

// CommandRunner runs an OS command and returns what it printed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// matchKeyword returns the first keyword found in output, ignoring case.
func matchKeyword(output string, keywords []string) (string, bool) {
	lower := strings.ToLower(output)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return k, true
		}
	}
	return "", false
}

// writeTemp stores a print job in a file the OS tools can pick up.
func writeTemp(dir, pattern string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// removeAfter deletes path once the spooler had time to read it.
func removeAfter(path string, delay time.Duration, log *zap.Logger) {
	if delay <= 0 {
		removeNow(path, log)
		return
	}
	time.AfterFunc(delay, func() { removeNow(path, log) })
}

func removeNow(path string, log *zap.Logger) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn("could not remove temp file", zap.String("path", path), zap.Error(err))
	}
}
