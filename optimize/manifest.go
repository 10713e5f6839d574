package optimize

import (
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/put0/imgshrink/compress"
	"github.com/put0/imgshrink/sri"
)

// Manifest lists the files a run converted.
type Manifest struct {
	Root       string          `json:"root"`
	Converted  int             `json:"converted"`
	SavedBytes int64           `json:"savedBytes"`
	Files      []ManifestEntry `json:"files"`
}

// ManifestEntry is one converted file. Paths are relative to the root.
type ManifestEntry struct {
	Source       string `json:"source"`
	Webp         string `json:"webp"`
	OriginalSize int64  `json:"originalSize"`
	Size         int64  `json:"size"`
	SRI          string `json:"sri"`
}

// NewManifest builds the manifest of s, hashing each kept .webp.
func NewManifest(root string, s Summary) (*Manifest, error) {
	m := &Manifest{
		Root:       root,
		Converted:  s.Converted,
		SavedBytes: s.SavedBytes,
		Files:      make([]ManifestEntry, 0, len(s.Results)),
	}
	for _, r := range s.Results {
		integrity, err := sri.CalculateFileSRI(r.WebpPath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to hash %s", r.WebpPath)
		}
		m.Files = append(m.Files, ManifestEntry{
			Source:       r.Rel,
			Webp:         compress.WebpPath(r.Rel),
			OriginalSize: r.OriginalSize,
			Size:         r.NewSize,
			SRI:          integrity,
		})
	}
	return m, nil
}

// WriteManifest writes the manifest of s as indented JSON to file.
func WriteManifest(file, root string, s Summary) error {
	m, err := NewManifest(root, s)
	if err != nil {
		return err
	}
	bytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal manifest")
	}
	if err := ioutil.WriteFile(file, bytes, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", file)
	}
	return nil
}
