// pkg/install/acquire.go
package install

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"

	"github.com/rte-toolkit/dpdkgen/pkg/core"
)

// acquire obtains DPDK sources (clone or release tarball, per config),
// builds them, and validates the conventional build output directory.
func (l *Locator) acquire(ctx context.Context) (*Installation, error) {
	var (
		srcDir string
		err    error
	)
	switch l.cfg.Acquire.Method {
	case "", "git":
		srcDir, err = l.cloneSource(ctx)
	case "tarball":
		srcDir, err = l.downloadSource(ctx)
	default:
		return nil, &core.Error{Op: "acquire", Err: fmt.Errorf("unknown method %q", l.cfg.Acquire.Method)}
	}
	if err != nil {
		return nil, &core.Error{Op: "acquire", Err: fmt.Errorf("%w: %v", core.ErrAcquisitionFailed, err)}
	}

	if err := l.build(ctx, srcDir); err != nil {
		return nil, &core.Error{Op: "acquire", Path: srcDir, Err: fmt.Errorf("%w: %v", core.ErrAcquisitionFailed, err)}
	}

	return Open(filepath.Join(srcDir, "build"))
}

// cloneSource clones the pinned DPDK release into the cache. An existing
// clone is reused as-is.
func (l *Locator) cloneSource(ctx context.Context) (string, error) {
	dir := filepath.Join(l.cfg.CachePath, "3rdparty")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	gitPath := filepath.Join(dir, "dpdk")
	if _, err := os.Stat(gitPath); err == nil {
		l.log.Info("reusing existing clone", zap.String("path", gitPath))
		return gitPath, nil
	}

	tag := "v" + l.cfg.Acquire.Release
	l.log.Info("cloning DPDK",
		zap.String("url", l.cfg.Acquire.RepoURL),
		zap.String("tag", tag),
		zap.String("path", gitPath))

	_, err := git.PlainCloneContext(ctx, gitPath, false, &git.CloneOptions{
		URL:           l.cfg.Acquire.RepoURL,
		ReferenceName: plumbing.NewTagReferenceName(tag),
		SingleBranch:  true,
		Depth:         1,
		Progress:      os.Stderr,
	})
	if err != nil {
		os.RemoveAll(gitPath)
		return "", fmt.Errorf("git clone failed: %w", err)
	}

	return gitPath, nil
}

// build runs the DPDK legacy make build: "make defconfig" followed by a
// parallel "make" with EXTRA_CFLAGS=-fPIC. The flag is passed as an
// explicit per-command environment override; the ambient process
// environment is never mutated.
func (l *Locator) build(ctx context.Context, dir string) error {
	if err := l.runMake(ctx, dir, nil, "defconfig"); err != nil {
		return fmt.Errorf("make defconfig: %w", err)
	}

	jobs := l.cfg.Acquire.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	env := map[string]string{"EXTRA_CFLAGS": " -fPIC "}
	if err := l.runMake(ctx, dir, env, fmt.Sprintf("-j%d", jobs)); err != nil {
		return fmt.Errorf("make: %w", err)
	}
	return nil
}

func (l *Locator) runMake(ctx context.Context, dir string, env map[string]string, args ...string) error {
	cmdArgs := append([]string{"-C", dir}, args...)
	l.log.Debug("running make", zap.Strings("args", cmdArgs))

	cmd := exec.CommandContext(ctx, "make", cmdArgs...)
	cmd.Env = os.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
