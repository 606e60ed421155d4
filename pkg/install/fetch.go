// pkg/install/fetch.go
package install

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"go.uber.org/zap"
)

// fetch performs the single GET this package needs: the release tarball
// from the mirror. The timeout covers the whole multi-megabyte transfer.
func fetch(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "dpdkgen/1.0")

	client := &http.Client{Timeout: 10 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return resp, nil
}

// downloadSource fetches the pinned DPDK release tarball and extracts it
// into the cache. An existing source tree is reused as-is.
func (l *Locator) downloadSource(ctx context.Context) (string, error) {
	dir := filepath.Join(l.cfg.CachePath, "3rdparty")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	srcDir := filepath.Join(dir, "dpdk-"+l.cfg.Acquire.Release)
	if _, err := os.Stat(srcDir); err == nil {
		l.log.Info("reusing existing source tree", zap.String("path", srcDir))
		return srcDir, nil
	}

	url := fmt.Sprintf("%s/dpdk-%s.tar.xz", strings.TrimRight(l.cfg.Acquire.MirrorURL, "/"), l.cfg.Acquire.Release)
	l.log.Info("downloading DPDK release", zap.String("url", url))

	resp, err := fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if err := extractTarXz(resp.Body, dir); err != nil {
		os.RemoveAll(srcDir)
		return "", fmt.Errorf("extracting %s: %w", url, err)
	}

	if _, err := os.Stat(srcDir); err != nil {
		return "", fmt.Errorf("archive did not contain dpdk-%s/", l.cfg.Acquire.Release)
	}
	return srcDir, nil
}

// linkWithinDest reports whether a symlink at target pointing to linkname
// stays inside dest. Absolute targets and relative targets that climb out
// of dest are refused.
func linkWithinDest(dest, target, linkname string) bool {
	if filepath.IsAbs(linkname) {
		return false
	}
	resolved := filepath.Join(filepath.Dir(target), linkname)
	rel, err := filepath.Rel(dest, resolved)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// extractTarXz unpacks an xz-compressed tarball under dest
func extractTarXz(r io.Reader, dest string) error {
	xzReader, err := xz.NewReader(r)
	if err != nil {
		return fmt.Errorf("creating xz reader: %w", err)
	}
	tarReader := tar.NewReader(xzReader)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		cleanPath := strings.TrimPrefix(header.Name, "./")
		if cleanPath == "" || cleanPath == "." {
			continue
		}
		// Refuse entries escaping the destination
		if strings.Contains(cleanPath, "..") {
			continue
		}
		target := filepath.Join(dest, cleanPath)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(header.Mode)); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("creating directory for %s: %w", target, err)
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("creating file %s: %w", target, err)
			}
			if _, err := io.Copy(f, tarReader); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", target, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", target, err)
			}
		case tar.TypeSymlink:
			if !linkWithinDest(dest, target, header.Linkname) {
				continue
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("creating directory for %s: %w", target, err)
			}
			os.Remove(target)
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf("creating symlink %s: %w", target, err)
			}
		}
	}

	return nil
}
