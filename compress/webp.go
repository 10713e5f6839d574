package compress

import (
	"context"
	"os"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	"github.com/pkg/errors"

	"github.com/put0/imgshrink/util"
)

// DefaultQuality is the lossy WebP quality used when none is configured.
const DefaultQuality = 80

// DecodeError is returned when a source image cannot be read or parsed.
type DecodeError struct {
	Err error
}

func (e DecodeError) Error() string { return e.Err.Error() }

// Cause lets errors.Cause reach the underlying error.
func (e DecodeError) Cause() error { return e.Err }

// Options controls a WebP conversion.
type Options struct {
	// Quality is the lossy quality, 0 to 100.
	Quality int
}

// DefaultOptions returns quality 80.
func DefaultOptions() Options {
	return Options{Quality: DefaultQuality}
}

// Webp decodes src and writes it to dst as lossy WebP, overwriting dst.
// PNG sources are copied to a non-premultiplied RGBA buffer first so
// their alpha channel reaches the encoder untouched.
// A decode failure is returned as a DecodeError and leaves dst untouched.
// If encoding fails, any partially written dst is removed.
func Webp(ctx context.Context, src, dst string, opts Options) error {
	img, err := imaging.Open(src)
	if err != nil {
		return DecodeError{errors.Wrapf(err, "failed to decode %s", src)}
	}

	if PngExt[Ext(src)] {
		img = imaging.Clone(img)
	}

	encOpts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(opts.Quality))
	if err != nil {
		return errors.Wrapf(err, "invalid quality %d", opts.Quality)
	}

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", dst)
	}

	util.Debugf(ctx, "compress: webp q=%d %s -> %s\n", opts.Quality, src, dst)
	if err := webp.Encode(out, img, encOpts); err != nil {
		out.Close()
		os.Remove(dst)
		return errors.Wrapf(err, "failed to encode %s", dst)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return errors.Wrapf(err, "failed to write %s", dst)
	}
	return nil
}
