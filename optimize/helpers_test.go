package optimize

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/put0/imgshrink/compress"
	"github.com/put0/imgshrink/config"
	"github.com/put0/imgshrink/util"
)

// fakeEncoder writes a .webp whose size is looked up by source base name.
// Names in broken fail to decode, names in unwritable fail to encode.
type fakeEncoder struct {
	sizes      map[string]int
	broken     map[string]bool
	unwritable map[string]bool
	calls      []string
}

func (f *fakeEncoder) Encode(ctx context.Context, src, dst string) error {
	name := filepath.Base(src)
	f.calls = append(f.calls, name)
	if f.broken[name] {
		return compress.DecodeError{Err: errors.Errorf("failed to decode %s: png: invalid format", src)}
	}
	if f.unwritable[name] {
		return errors.Errorf("failed to create %s: permission denied", dst)
	}
	size, ok := f.sizes[name]
	if !ok {
		return errors.Errorf("no size for %s", name)
	}
	return ioutil.WriteFile(dst, bytes.Repeat([]byte{'w'}, size), 0644)
}

func testContext(buf *bytes.Buffer) context.Context {
	return util.ContextWithEntries(context.Background(), util.ContextEntry{
		Key:   util.Logger,
		Value: util.GetWriterLogger(buf),
	})
}

// warnContext records every Warnf line in warnings.
func warnContext(buf *bytes.Buffer, warnings *[]string) context.Context {
	return util.ContextWithEntries(testContext(buf), util.ContextEntry{
		Key: util.Warn,
		Value: util.LogFunc(func(_ context.Context, format string, v ...interface{}) {
			*warnings = append(*warnings, fmt.Sprintf(format, v...))
		}),
	})
}

func writeSized(t *testing.T, dir, name string, size int) string {
	t.Helper()
	fp := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, ioutil.WriteFile(fp, bytes.Repeat([]byte{'o'}, size), 0644))
	return fp
}

func exists(fp string) bool {
	_, err := os.Stat(fp)
	return err == nil
}

func sizeOf(t *testing.T, fp string) int64 {
	t.Helper()
	info, err := os.Stat(fp)
	require.NoError(t, err)
	return info.Size()
}

func testConfig(root string) *config.Config {
	c := config.Default()
	c.Root = root
	return c
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}
