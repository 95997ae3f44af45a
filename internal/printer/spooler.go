package printer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	spoolerStdoutKeywords = []string{
		"erro", "error", "exception", "cannot", "unable", "failed", "falha",
		"nao encontrado", "não encontrado", "not found", "access denied",
		"permission denied", "not recognized", "não reconhecido",
	}
	spoolerStderrKeywords = []string{
		"error", "exception", "erro", "não encontrado", "not found", "cannot",
		"unable", "failed", "access denied", "permission denied",
	}
	invalidHandleKeywords = []string{"identificador", "invalid", "win32exception", "invalid handle"}

	printSuccessKeywords = []string{"esta sendo impresso", "está sendo impresso", "being printed"}
	printFailureKeywords = []string{"inicializar", "dispositivo", "não é possível", "não encontrado", "not found"}
)

var errOutputReportsFailure = errors.New("spooler output reports a failure")

// Spooler hands jobs to the operating system print queue. In raw mode the
// job is framed with ESC/POS commands for thermal printers installed as
// regular queues.
type Spooler struct {
	name string
	raw  bool
	log  *zap.Logger

	Runner       CommandRunner
	GOOS         string
	TempDir      string
	CleanupDelay time.Duration

	mu sync.Mutex
}

func NewSpooler(name string, raw bool, log *zap.Logger) *Spooler {
	return &Spooler{
		name:         strings.TrimSpace(name),
		raw:          raw,
		log:          log,
		Runner:       ExecRunner{},
		GOOS:         runtime.GOOS,
		CleanupDelay: 10 * time.Second,
	}
}

func (s *Spooler) Kind() Kind { return KindSpooler }

func (s *Spooler) Describe() string {
	if s.name == "" {
		return "system printer (default queue)"
	}
	return "system printer " + s.name
}

func (s *Spooler) Connect(ctx context.Context) error { return nil }

func (s *Spooler) IsConnected() bool { return true }

func (s *Spooler) Disconnect() error { return nil }

func (s *Spooler) Send(ctx context.Context, receipt []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := receipt
	if s.raw {
		data = Frame(receipt)
	}
	tmp, err := writeTemp(s.TempDir, "receipt-*.txt", data)
	if err != nil {
		return fmt.Errorf("write print job: %w", err)
	}

	if err := s.submit(ctx, tmp); err != nil {
		removeNow(tmp, s.log)
		return err
	}
	removeAfter(tmp, s.CleanupDelay, s.log)
	return nil
}

func (s *Spooler) submit(ctx context.Context, path string) error {
	if s.GOOS != "windows" {
		args := []string{path}
		if s.name != "" {
			args = []string{"-d", s.name, path}
		}
		s.log.Info("sending to print queue", zap.String("printer", s.queueName()))
		stdout, stderr, err := s.Runner.Run(ctx, "lp", args...)
		if err != nil {
			return fmt.Errorf("lp: %w: %s", err, strings.TrimSpace(stderr))
		}
		return checkSpoolerOutput(stdout, stderr)
	}

	s.log.Info("sending to print queue", zap.String("printer", s.queueName()))
	stdout, stderr, err := s.Runner.Run(ctx, "powershell", "-NoProfile", "-Command", s.outPrinterScript(path))
	if err == nil {
		return checkSpoolerOutput(stdout, stderr)
	}

	_, invalidHandle := matchKeyword(err.Error()+" "+stderr, invalidHandleKeywords)
	if s.name == "" || !invalidHandle {
		return fmt.Errorf("out-printer: %w: %s", err, strings.TrimSpace(stderr))
	}

	s.log.Warn("Out-Printer failed with an invalid handle, falling back to print", zap.Error(err))
	pOut, pErr, fbErr := s.Runner.Run(ctx, "print", "/D:"+s.name, path)
	if fbErr != nil {
		return fmt.Errorf("out-printer: %v; print fallback: %w", err, fbErr)
	}
	if _, ok := matchKeyword(pOut, printSuccessKeywords); ok {
		return nil
	}
	if _, bad := matchKeyword(pOut, printFailureKeywords); bad || strings.TrimSpace(pErr) != "" {
		return fmt.Errorf("print fallback to %s failed: %s %s", s.name, strings.TrimSpace(pOut), strings.TrimSpace(pErr))
	}
	return nil
}

func (s *Spooler) queueName() string {
	if s.name == "" {
		return "default"
	}
	return s.name
}

func (s *Spooler) outPrinterScript(path string) string {
	script := fmt.Sprintf("Get-Content -Path '%s' -Raw -Encoding UTF8 | Out-Printer", psQuote(path))
	if s.name != "" {
		script += fmt.Sprintf(" -Name '%s'", psQuote(s.name))
	}
	return script
}

func psQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// checkSpoolerOutput treats known failure words in the command output as
// a failed job even when the command exited cleanly.
func checkSpoolerOutput(stdout, stderr string) error {
	if kw, bad := matchKeyword(stdout, spoolerStdoutKeywords); bad {
		return fmt.Errorf("%w (%q): %s", errOutputReportsFailure, kw, strings.TrimSpace(stdout))
	}
	if kw, bad := matchKeyword(stderr, spoolerStderrKeywords); bad {
		return fmt.Errorf("%w (%q): %s", errOutputReportsFailure, kw, strings.TrimSpace(stderr))
	}
	return nil
}
