package images

import (
	"math/rand"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DirPool serves greeting images from a local directory. The directory is
// rescanned on every pick so images can be added or removed without a
// restart. A missing or empty directory simply yields no image.
type DirPool struct {
	dir    string
	logger *logrus.Entry
}

func NewDirPool(dir string, logger *logrus.Entry) *DirPool {
	return &DirPool{dir: dir, logger: logger}
}

// PickRandom returns the contents of one uniformly random regular file from
// the pool directory, or ok=false if none is available.
func (p *DirPool) PickRandom(rng *rand.Rand) ([]byte, bool) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			p.logger.WithError(err).Warn("Failed to read images directory")
		}
		return nil, false
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, false
	}

	name := files[rng.Intn(len(files))]
	data, err := os.ReadFile(filepath.Join(p.dir, name))
	if err != nil {
		p.logger.WithError(err).WithField("image", name).Warn("Failed to read greeting image")
		return nil, false
	}
	return data, true
}
