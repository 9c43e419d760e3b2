// Package scan enumerates raw image files and builds descriptors from
// file-system stats and filename heuristics.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/taku2365/llm-camera/internal/model"
)

const bytesPerMB = 1024 * 1024

// Lens labels produced by Classify.
const (
	LensTelephoto = "Telephoto (2.5x)"
	LensWide      = "Wide (1x)"
	LensUltraWide = "Ultra-wide (0.5x)"
	LensUnknown   = "Unknown"
)

// Classify infers the lens from iPhone camera-app naming conventions.
// The checks are ordered: "2.5x" wins over the "1x" substring it
// contains, and ".5" catches ultra-wide names like "IMG_0.5x.DNG".
func Classify(filename string) string {
	switch {
	case strings.Contains(filename, "2.5x"):
		return LensTelephoto
	case strings.Contains(filename, "1x"):
		return LensWide
	case strings.Contains(filename, ".5"):
		return LensUltraWide
	default:
		return LensUnknown
	}
}

// Dir enumerates raw files in dir by extension (case-insensitive .dng),
// sorted by filename, and returns one descriptor per file. The
// directory read is the only fatal error; unreadable individual files
// are skipped.
func Dir(dir string) ([]model.RawFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan: read dir %s: %w", dir, err)
	}

	var files []model.RawFile
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".dng") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, model.RawFile{
			Path:      filepath.Join(dir, e.Name()),
			Name:      e.Name(),
			SizeBytes: info.Size(),
			SizeMB:    float64(info.Size()) / bytesPerMB,
			ModTime:   info.ModTime(),
			Lens:      Classify(e.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
