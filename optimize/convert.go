package optimize

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/put0/imgshrink/compress"
	"github.com/put0/imgshrink/util"
)

// Encoder writes the image at src to dst in the target format.
// A compress.DecodeError reports that src could not be read as an image.
type Encoder interface {
	Encode(ctx context.Context, src, dst string) error
}

// WebpEncoder encodes with the WebP codec.
type WebpEncoder struct {
	Options compress.Options
}

// Encode implements Encoder.
func (e WebpEncoder) Encode(ctx context.Context, src, dst string) error {
	return compress.Webp(ctx, src, dst, e.Options)
}

// Converter turns one candidate into a .webp, keeping whichever is smaller.
type Converter struct {
	Encoder Encoder

	// remove deletes a file; nil means os.Remove.
	remove func(string) error
}

func (c *Converter) removeFile(path string) error {
	if c.remove != nil {
		return c.remove(path)
	}
	return os.Remove(path)
}

// discardWebp removes the .webp left by a failed conversion. If that fails
// too, err is extended so the orphan is reported with the failure.
func (c *Converter) discardWebp(ctx context.Context, webpPath string, err error) error {
	rmErr := c.removeFile(webpPath)
	if rmErr == nil || os.IsNotExist(rmErr) {
		return err
	}
	util.Warnf(ctx, "orphaned %s: %s", webpPath, rmErr)
	return errors.Wrapf(err, "%s left behind (%s)", webpPath, rmErr)
}

// Convert processes the file at path. The original is deleted only when
// the .webp is strictly smaller; on a tie the .webp is removed.
// An existing .webp sibling is overwritten, with a warning.
func (c *Converter) Convert(ctx context.Context, path string) Result {
	res := Result{
		Path:     path,
		WebpPath: compress.WebpPath(path),
	}
	fail := func(kind FailureKind, err error) Result {
		res.Outcome = Failed
		res.Err = &ConvertError{Kind: kind, Path: path, Err: err}
		return res
	}

	info, err := os.Stat(path)
	if err != nil {
		return fail(FilesystemFailure, errors.Wrap(err, "failed to stat source"))
	}
	res.OriginalSize = info.Size()

	if _, err := os.Stat(res.WebpPath); err == nil {
		util.Warnf(ctx, "%s already exists and will be overwritten by %s", res.WebpPath, path)
	}

	if err := c.Encoder.Encode(ctx, path, res.WebpPath); err != nil {
		var decodeErr compress.DecodeError
		if errors.As(err, &decodeErr) {
			return fail(DecodeFailure, err)
		}
		return fail(EncodeFailure, err)
	}

	info, err = os.Stat(res.WebpPath)
	if err != nil {
		err = c.discardWebp(ctx, res.WebpPath, errors.Wrap(err, "failed to stat webp"))
		return fail(FilesystemFailure, err)
	}
	res.NewSize = info.Size()

	if res.NewSize < res.OriginalSize {
		if err := c.removeFile(path); err != nil {
			// the original stays authoritative
			err = c.discardWebp(ctx, res.WebpPath, errors.Wrap(err, "failed to remove source"))
			return fail(FilesystemFailure, err)
		}
		res.Outcome = Converted
		return res
	}

	if err := c.removeFile(res.WebpPath); err != nil {
		return fail(FilesystemFailure, errors.Wrap(err, "failed to remove webp"))
	}
	util.Debugf(ctx, "discarded %s (%d >= %d)\n", res.WebpPath, res.NewSize, res.OriginalSize)
	res.Outcome = Discarded
	return res
}
