package printer

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var comPortPattern = regexp.MustCompile(`^COM\d+$`)

// IsSerialPort reports whether name addresses a serial/USB port directly
// rather than a spooler queue.
func IsSerialPort(name string) bool {
	name = strings.TrimSpace(name)
	return comPortPattern.MatchString(strings.ToUpper(name)) || strings.HasPrefix(name, "/dev/tty")
}

var serialFailureKeywords = []string{
	"error",
	"erro",
	"não encontrado",
	"not found",
	"acesso negado",
	"access denied",
	"não é possível",
	"cannot",
	"no such file",
	"permission denied",
}

// Serial copies ESC/POS jobs straight to a COM port or tty device.
type Serial struct {
	port string
	log  *zap.Logger

	Runner       CommandRunner
	GOOS         string
	TempDir      string
	CleanupDelay time.Duration

	mu sync.Mutex
}

func NewSerial(port string, log *zap.Logger) *Serial {
	port = strings.TrimSpace(port)
	if comPortPattern.MatchString(strings.ToUpper(port)) {
		port = strings.ToUpper(port)
	}
	return &Serial{
		port:         port,
		log:          log,
		Runner:       ExecRunner{},
		GOOS:         runtime.GOOS,
		CleanupDelay: 5 * time.Second,
	}
}

func (s *Serial) Kind() Kind { return KindSerial }

func (s *Serial) Describe() string { return "serial printer " + s.port }

// Connect checks that a tty device exists. COM ports cannot be checked
// without opening them, so they are assumed present.
func (s *Serial) Connect(ctx context.Context) error {
	if s.GOOS == "windows" || !strings.HasPrefix(s.port, "/dev/") {
		return nil
	}
	if _, err := os.Stat(s.port); err != nil {
		return fmt.Errorf("serial port %s: %w", s.port, err)
	}
	return nil
}

func (s *Serial) IsConnected() bool { return true }

func (s *Serial) Disconnect() error { return nil }

func (s *Serial) Send(ctx context.Context, receipt []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := writeTemp(s.TempDir, "receipt-com-*.bin", Frame(receipt))
	if err != nil {
		return fmt.Errorf("write print job: %w", err)
	}

	var name string
	var args []string
	if s.GOOS == "windows" {
		name, args = "cmd", []string{"/C", "copy", "/B", tmp, s.port}
	} else {
		name, args = "cp", []string{tmp, s.port}
	}

	s.log.Info("sending to serial port", zap.String("port", s.port))
	_, stderr, err := s.Runner.Run(ctx, name, args...)
	if err != nil {
		removeNow(tmp, s.log)
		return fmt.Errorf("copy to %s: %w: %s", s.port, err, strings.TrimSpace(stderr))
	}
	if kw, bad := matchKeyword(stderr, serialFailureKeywords); bad {
		removeNow(tmp, s.log)
		return fmt.Errorf("copy to %s reported %q: %s", s.port, kw, strings.TrimSpace(stderr))
	}

	removeAfter(tmp, s.CleanupDelay, s.log)
	return nil
}
