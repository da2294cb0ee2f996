// Package icongen produces sets of solid-color placeholder icon PNGs,
// the kind an app bundle needs before real artwork exists.
package icongen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Mavwarf/iconforge/internal/paths"
	"github.com/Mavwarf/iconforge/internal/pngenc"
)

// DefaultColor is the placeholder fill used when no color is configured.
var DefaultColor = pngenc.Color{R: 0, G: 123, B: 255}

// Variant names one output file and its pixel dimension.
type Variant struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// DefaultSet returns the standard placeholder trio: a 32px and a 128px
// icon, plus a 256px file named as the 128px "@2x" retina variant.
func DefaultSet() []Variant {
	return []Variant{
		{Name: FileName(32, 1), Size: 32},
		{Name: FileName(128, 1), Size: 128},
		{Name: FileName(128, 2), Size: 256},
	}
}

// FileName returns the conventional icon file name for a logical size and
// scale factor, e.g. FileName(128, 2) == "128x128@2x.png".
func FileName(size, scale int) string {
	if scale > 1 {
		return fmt.Sprintf("%dx%d@%dx.png", size, size, scale)
	}
	return fmt.Sprintf("%dx%d.png", size, size)
}

// Generate writes every variant in set to dir as a solid-color PNG and
// returns the paths written, in order. The output directory is created if
// needed. The first failure aborts the remaining variants.
func Generate(dir string, set []Variant, c pngenc.Color) ([]string, error) {
	if err := os.MkdirAll(dir, paths.DirPerm); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(set))
	for _, v := range set {
		p := filepath.Join(dir, v.Name)
		if err := pngenc.WriteSolidFile(p, v.Size, c); err != nil {
			return written, fmt.Errorf("icongen: %s: %w", v.Name, err)
		}
		written = append(written, p)
	}
	return written, nil
}
