package optimize

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/put0/imgshrink/compress"
)

func TestConvertKeepsSmallerWebp(t *testing.T) {
	dir := t.TempDir()
	src := writeSized(t, dir, "icon.png", 5000)
	enc := &fakeEncoder{sizes: map[string]int{"icon.png": 3000}}

	var buf bytes.Buffer
	res := (&Converter{Encoder: enc}).Convert(testContext(&buf), src)

	require.Nil(t, res.Err)
	assert.Equal(t, Converted, res.Outcome)
	assert.Equal(t, int64(5000), res.OriginalSize)
	assert.Equal(t, int64(3000), res.NewSize)
	assert.Equal(t, int64(2000), res.Saved())
	assert.False(t, exists(src))
	assert.Equal(t, filepath.Join(dir, "icon.webp"), res.WebpPath)
	assert.Equal(t, int64(3000), sizeOf(t, res.WebpPath))
}

func TestConvertDiscardsLargerWebp(t *testing.T) {
	dir := t.TempDir()
	src := writeSized(t, dir, "photo.jpg", 2000)
	enc := &fakeEncoder{sizes: map[string]int{"photo.jpg": 2200}}

	var buf bytes.Buffer
	res := (&Converter{Encoder: enc}).Convert(testContext(&buf), src)

	assert.Equal(t, Discarded, res.Outcome)
	assert.Equal(t, int64(0), res.Saved())
	assert.Equal(t, int64(2000), sizeOf(t, src))
	assert.False(t, exists(res.WebpPath))
}

func TestConvertDiscardsOnTie(t *testing.T) {
	dir := t.TempDir()
	src := writeSized(t, dir, "tie.png", 1234)
	enc := &fakeEncoder{sizes: map[string]int{"tie.png": 1234}}

	var buf bytes.Buffer
	res := (&Converter{Encoder: enc}).Convert(testContext(&buf), src)

	assert.Equal(t, Discarded, res.Outcome)
	assert.True(t, exists(src))
	assert.False(t, exists(res.WebpPath))
}

func TestConvertDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	src := writeSized(t, dir, "broken.png", 10)
	enc := &fakeEncoder{broken: map[string]bool{"broken.png": true}}

	var buf bytes.Buffer
	res := (&Converter{Encoder: enc}).Convert(testContext(&buf), src)

	assert.Equal(t, Failed, res.Outcome)
	require.NotNil(t, res.Err)
	assert.Equal(t, DecodeFailure, res.Err.Kind)
	assert.Equal(t, src, res.Err.Path)
	assert.True(t, exists(src))
	assert.False(t, exists(res.WebpPath))

	var decodeErr compress.DecodeError
	assert.True(t, errors.As(res.Err, &decodeErr))
}

func TestConvertEncodeFailure(t *testing.T) {
	dir := t.TempDir()
	src := writeSized(t, dir, "locked.jpg", 10)
	enc := &fakeEncoder{unwritable: map[string]bool{"locked.jpg": true}}

	var buf bytes.Buffer
	res := (&Converter{Encoder: enc}).Convert(testContext(&buf), src)

	assert.Equal(t, Failed, res.Outcome)
	require.NotNil(t, res.Err)
	assert.Equal(t, EncodeFailure, res.Err.Kind)
	assert.Contains(t, res.Err.Error(), "encode: ")
	assert.True(t, exists(src))
}

func TestConvertMissingSource(t *testing.T) {
	enc := &fakeEncoder{}

	var buf bytes.Buffer
	res := (&Converter{Encoder: enc}).Convert(testContext(&buf), filepath.Join(t.TempDir(), "gone.png"))

	assert.Equal(t, Failed, res.Outcome)
	require.NotNil(t, res.Err)
	assert.Equal(t, FilesystemFailure, res.Err.Kind)
	assert.Empty(t, enc.calls)
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s = s.Add(Result{Outcome: Converted, OriginalSize: 5000, NewSize: 3000})
	s = s.Add(Result{Outcome: Discarded, OriginalSize: 2000, NewSize: 2200})
	s = s.Add(Result{Outcome: Failed})
	s = s.Add(Result{Outcome: Converted, OriginalSize: 1024 * 1024, NewSize: 0})

	assert.Equal(t, 2, s.Converted)
	assert.Equal(t, 1, s.Discarded)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, int64(2000+1024*1024), s.SavedBytes)
	assert.Len(t, s.Results, 2)
	assert.InDelta(t, 1.0019, s.SavedMiB(), 0.0001)
}

func TestConvertSourceRemoveFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	src := writeSized(t, dir, "icon.png", 5000)
	enc := &fakeEncoder{sizes: map[string]int{"icon.png": 3000}}
	conv := &Converter{
		Encoder: enc,
		remove: func(fp string) error {
			if fp == src {
				return os.ErrPermission
			}
			return os.Remove(fp)
		},
	}

	var buf bytes.Buffer
	res := conv.Convert(testContext(&buf), src)

	assert.Equal(t, Failed, res.Outcome)
	require.NotNil(t, res.Err)
	assert.Equal(t, FilesystemFailure, res.Err.Kind)
	assert.True(t, exists(src))
	assert.False(t, exists(res.WebpPath))
	assert.NotContains(t, res.Err.Error(), "left behind")
}

func TestConvertReportsOrphanedWebp(t *testing.T) {
	dir := t.TempDir()
	src := writeSized(t, dir, "icon.png", 5000)
	enc := &fakeEncoder{sizes: map[string]int{"icon.png": 3000}}
	conv := &Converter{
		Encoder: enc,
		remove: func(fp string) error {
			return os.ErrPermission
		},
	}

	var buf bytes.Buffer
	var warnings []string
	res := conv.Convert(warnContext(&buf, &warnings), src)

	assert.Equal(t, Failed, res.Outcome)
	require.NotNil(t, res.Err)
	assert.Contains(t, res.Err.Error(), "failed to remove source")
	assert.Contains(t, res.Err.Error(), filepath.Join(dir, "icon.webp")+" left behind")
	assert.True(t, errors.Is(res.Err, os.ErrPermission))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "orphaned")
	assert.True(t, exists(src))
	assert.True(t, exists(res.WebpPath))
}

func TestConvertWarnsOnExistingWebp(t *testing.T) {
	dir := t.TempDir()
	writeSized(t, dir, "icon.webp", 700)
	src := writeSized(t, dir, "icon.png", 500)
	enc := &fakeEncoder{sizes: map[string]int{"icon.png": 600}}

	var buf bytes.Buffer
	var warnings []string
	res := (&Converter{Encoder: enc}).Convert(warnContext(&buf, &warnings), src)

	assert.Equal(t, Discarded, res.Outcome)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "icon.webp already exists")
	// the overwrite happens before the decision, so the old .webp is gone
	assert.False(t, exists(res.WebpPath))
}

func TestConvertNoWarningWithoutSibling(t *testing.T) {
	dir := t.TempDir()
	src := writeSized(t, dir, "icon.png", 5000)
	enc := &fakeEncoder{sizes: map[string]int{"icon.png": 3000}}

	var buf bytes.Buffer
	var warnings []string
	res := (&Converter{Encoder: enc}).Convert(warnContext(&buf, &warnings), src)

	assert.Equal(t, Converted, res.Outcome)
	assert.Empty(t, warnings)
}
