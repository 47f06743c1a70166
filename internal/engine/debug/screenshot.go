// Package debug holds developer tooling for the editor: viewport screenshots.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes viewport captures as timestamped PNG files.
type Screenshots struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewScreenshots creates a writer that saves into dir. An empty dir uses
// the working directory.
func NewScreenshots(dir, prefix string) *Screenshots {
	if prefix == "" {
		prefix = "lodscene"
	}
	return &Screenshots{dir: dir, prefix: prefix, now: time.Now}
}

// Dir returns the output directory.
func (s *Screenshots) Dir() string {
	return s.dir
}

// Save encodes img as PNG and returns the path written. Captures taken in
// the same second get a numeric suffix instead of overwriting each other.
func (s *Screenshots) Save(img image.Image) (string, error) {
	if img == nil || img.Bounds().Empty() {
		return "", errors.New("screenshot: empty image")
	}
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return "", fmt.Errorf("screenshot: creating output dir: %w", err)
		}
	}

	path, f, err := s.create()
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("screenshot: encoding %s: %w", path, err)
	}
	return path, nil
}

func (s *Screenshots) create() (string, *os.File, error) {
	stamp := s.now().Format("2006-01-02_15-04-05")
	for n := 0; n < 100; n++ {
		name := fmt.Sprintf("%s_%s.png", s.prefix, stamp)
		if n > 0 {
			name = fmt.Sprintf("%s_%s_%d.png", s.prefix, stamp, n)
		}
		path := filepath.Join(s.dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", nil, fmt.Errorf("screenshot: creating file: %w", err)
		}
		return path, f, nil
	}
	return "", nil, fmt.Errorf("screenshot: too many captures at %s", stamp)
}
