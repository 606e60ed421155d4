package install

import (
	"archive/tar"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/rte-toolkit/dpdkgen/pkg/core"
)

// buildTarXz produces an xz-compressed tarball with the given files,
// keyed by archive path.
func buildTarXz(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	xzWriter, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	tarWriter := tar.NewWriter(xzWriter)

	for name, content := range files {
		require.NoError(t, tarWriter.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0644,
			Size:     int64(len(content)),
		}))
		_, err := tarWriter.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tarWriter.Close())
	require.NoError(t, xzWriter.Close())
	return buf.Bytes()
}

func TestDownloadSource(t *testing.T) {
	archive := buildTarXz(t, map[string]string{
		"dpdk-20.02/Makefile":             "all:\n",
		"dpdk-20.02/config/defconfig_x86": "CONFIG=y\n",
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dpdk-20.02.tar.xz", r.URL.Path)
		w.Write(archive)
	}))
	defer server.Close()

	cfg := core.DefaultConfig()
	cfg.CachePath = t.TempDir()
	cfg.Acquire.MirrorURL = server.URL

	locator := NewLocator(cfg, nil)
	srcDir, err := locator.downloadSource(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.CachePath, "3rdparty", "dpdk-20.02"), srcDir)

	data, err := os.ReadFile(filepath.Join(srcDir, "Makefile"))
	require.NoError(t, err)
	assert.Equal(t, "all:\n", string(data))

	// a second call reuses the extracted tree without hitting the mirror
	server.Close()
	again, err := locator.downloadSource(context.Background())
	require.NoError(t, err)
	assert.Equal(t, srcDir, again)
}

func TestDownloadSourceHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	cfg := core.DefaultConfig()
	cfg.CachePath = t.TempDir()
	cfg.Acquire.MirrorURL = server.URL

	locator := NewLocator(cfg, nil)
	_, err := locator.downloadSource(context.Background())
	assert.Error(t, err)
}

func TestExtractTarXzRefusesTraversal(t *testing.T) {
	archive := buildTarXz(t, map[string]string{
		"../escape": "nope",
		"safe/file": "ok",
	})

	dest := t.TempDir()
	require.NoError(t, extractTarXz(bytes.NewReader(archive), dest))

	_, err := os.Stat(filepath.Join(dest, "safe", "file"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(dest), "escape"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractTarXzRefusesEscapingSymlinks(t *testing.T) {
	var buf bytes.Buffer
	xzWriter, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	tarWriter := tar.NewWriter(xzWriter)

	links := []struct{ name, target string }{
		{"up", "../.."},
		{"abs", "/etc"},
		{"ok", "safe"},
	}
	for _, l := range links {
		require.NoError(t, tarWriter.WriteHeader(&tar.Header{
			Name:     l.name,
			Typeflag: tar.TypeSymlink,
			Linkname: l.target,
			Mode:     0777,
		}))
	}
	require.NoError(t, tarWriter.Close())
	require.NoError(t, xzWriter.Close())

	dest := t.TempDir()
	require.NoError(t, extractTarXz(bytes.NewReader(buf.Bytes()), dest))

	for _, name := range []string{"up", "abs"} {
		_, err := os.Lstat(filepath.Join(dest, name))
		assert.True(t, os.IsNotExist(err), name)
	}
	target, err := os.Readlink(filepath.Join(dest, "ok"))
	require.NoError(t, err)
	assert.Equal(t, "safe", target)
}
