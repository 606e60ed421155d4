// pkg/install/locate.go
package install

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/rte-toolkit/dpdkgen/pkg/core"
)

// Locator resolves a DPDK installation from the RTE_SDK environment
// variable, an interactive prompt, or the automatic acquisition fallback,
// in that order.
type Locator struct {
	cfg *core.Config
	log *zap.Logger

	// Stdin and Stdout carry the interactive prompt. They default to the
	// process streams and are swappable for tests.
	Stdin  io.Reader
	Stdout io.Writer
}

// NewLocator creates a locator with the given configuration
func NewLocator(cfg *core.Config, log *zap.Logger) *Locator {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Locator{
		cfg:    cfg,
		log:    log,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

// Locate resolves and validates a DPDK installation. Resolution order:
// RTE_SDK (joined with RTE_TARGET when set), interactive prompt, and on an
// empty prompt answer the automatic acquisition fallback.
func (l *Locator) Locate(ctx context.Context) (*Installation, error) {
	if path := os.Getenv(EnvSDK); path != "" {
		if target := os.Getenv(EnvTarget); target != "" {
			path = filepath.Join(path, target)
		}
		l.log.Info("using installation from environment",
			zap.String("var", EnvSDK), zap.String("path", path))
		return Open(path)
	}

	l.log.Info("environment variable not set", zap.String("var", EnvSDK))
	path, err := l.prompt()
	if err != nil {
		return nil, err
	}
	if path != "" {
		return Open(path)
	}

	l.log.Info("no path supplied, acquiring DPDK",
		zap.String("method", l.cfg.Acquire.Method),
		zap.String("release", l.cfg.Acquire.Release))
	return l.acquire(ctx)
}

func (l *Locator) prompt() (string, error) {
	fmt.Fprint(l.Stdout, "Enter DPDK path (install directory): ")
	reader := bufio.NewReader(l.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading prompt answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Open validates path as a DPDK installation and returns its handle. The
// path must be an existing directory containing include/rte_config.h.
func Open(path string) (*Installation, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, &core.Error{Op: "locate", Path: path, Err: core.ErrPathNotFound}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &core.Error{Op: "locate", Path: path, Err: err}
	}

	configHeader := filepath.Join(abs, "include", ConfigHeaderName)
	if _, err := os.Stat(configHeader); err != nil {
		return nil, &core.Error{Op: "locate", Path: configHeader, Err: core.ErrConfigHeaderMissing}
	}

	return &Installation{Root: abs, ConfigHeader: configHeader}, nil
}
