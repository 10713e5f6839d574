package config

import (
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"

	"github.com/put0/imgshrink/compress"
)

// Config is the resolved configuration of a run.
type Config struct {
	// Root is the directory to shrink.
	Root string
	// Quality is the lossy WebP quality, 0 to 100.
	Quality int
	// Extensions are the lower-cased, dotted extensions to convert.
	Extensions []string
	// Exclude are glob patterns matched against root-relative, slash-separated paths.
	Exclude []string
	// Manifest, when set, is where the JSON list of converted files is written.
	Manifest string
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	exts := make([]string, 0, len(compress.ImageExt))
	for ext := range compress.ImageExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	return &Config{
		Quality:    compress.DefaultQuality,
		Extensions: exts,
	}
}

// Apply overrides c with every field set in f.
func (c *Config) Apply(f *File) {
	if f.Root != nil {
		c.Root = *f.Root
	}
	if f.Quality != nil {
		c.Quality = *f.Quality
	}
	if f.Extensions != nil {
		c.Extensions = f.Extensions
	}
	if f.Exclude != nil {
		c.Exclude = f.Exclude
	}
	if f.Manifest != nil {
		c.Manifest = *f.Manifest
	}
}

// Validate normalizes the extensions and checks every field,
// returning the first problem found.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("no root directory given")
	}
	if c.Quality < 0 || c.Quality > 100 {
		return errors.Errorf("quality %d is out of range [0, 100]", c.Quality)
	}
	if len(c.Extensions) == 0 {
		return errors.New("no extensions to convert")
	}
	for i, ext := range c.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !compress.ImageExt[ext] {
			return errors.Errorf("unsupported extension %s", ext)
		}
		c.Extensions[i] = ext
	}
	for _, pattern := range c.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return errors.Wrapf(err, "invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

// Options returns the codec options of c.
func (c *Config) Options() compress.Options {
	return compress.Options{
		Quality: c.Quality,
	}
}
