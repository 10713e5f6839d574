package optimize

import (
	"path"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"

	"github.com/put0/imgshrink/compress"
)

// Filter decides which files of a tree are conversion candidates.
type Filter struct {
	exts    map[string]bool
	exclude []glob.Glob
}

// NewFilter builds a Filter accepting the given dotted extensions
// (compared case-insensitively) and rejecting paths matching any exclude glob.
func NewFilter(exts []string, exclude []string) (*Filter, error) {
	f := &Filter{exts: make(map[string]bool, len(exts))}
	for _, ext := range exts {
		f.exts[strings.ToLower(ext)] = true
	}
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "invalid exclude pattern %q", pattern)
		}
		f.exclude = append(f.exclude, g)
	}
	return f, nil
}

// Qualifies reports whether the file at the root-relative,
// slash-separated path rel should be converted.
// Nine-patch files never qualify; the suffix match is case-sensitive.
func (f *Filter) Qualifies(rel string) bool {
	name := path.Base(rel)
	if strings.HasSuffix(name, compress.NinePatchSuffix) {
		return false
	}
	if !f.exts[compress.Ext(name)] {
		return false
	}
	for _, g := range f.exclude {
		if g.Match(rel) {
			return false
		}
	}
	return true
}
