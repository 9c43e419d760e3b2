// Package exiftool shells out to the exiftool binary for metadata
// enrichment. The tool is an optional collaborator: a missing binary,
// a non-zero exit, or unparseable output all degrade to no enrichment.
package exiftool

import (
	"context"
	"encoding/json"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/taku2365/llm-camera/internal/model"
)

// Tool invokes exiftool for per-file metadata extraction.
type Tool struct {
	// Command is the binary name or path, normally "exiftool".
	Command string
}

// New returns a Tool using the given command. An empty command falls
// back to "exiftool".
func New(command string) *Tool {
	if command == "" {
		command = "exiftool"
	}
	return &Tool{Command: command}
}

// Available reports whether the configured command resolves on PATH.
func (t *Tool) Available() bool {
	_, err := exec.LookPath(t.Command)
	return err == nil
}

// rawRecord mirrors the exiftool -j field names we read. exiftool
// emits numbers or strings depending on the tag, so everything is
// decoded through json.Number-tolerant any values.
type rawRecord map[string]any

// Extract runs `exiftool -j <path>` and maps the first record to an
// Exif. All failures return (nil, nil): enrichment is best-effort and
// callers must treat a nil result as "no metadata available".
func (t *Tool) Extract(ctx context.Context, path string) *model.Exif {
	out, err := exec.CommandContext(ctx, t.Command, "-j", path).Output()
	if err != nil {
		slog.Debug("exiftool unavailable", "path", path, "err", err)
		return nil
	}

	var records []rawRecord
	if err := json.Unmarshal(out, &records); err != nil || len(records) == 0 {
		slog.Debug("exiftool output unparseable", "path", path, "err", err)
		return nil
	}

	rec := records[0]
	return &model.Exif{
		Make:              field(rec, "Make"),
		Model:             field(rec, "Model"),
		Software:          field(rec, "Software"),
		LensModel:         field(rec, "LensModel"),
		ISO:               field(rec, "ISO"),
		ShutterSpeed:      field(rec, "ShutterSpeed"),
		Aperture:          field(rec, "Aperture"),
		FocalLength:       field(rec, "FocalLength"),
		ColorSpace:        field(rec, "ColorSpace"),
		DNGVersion:        field(rec, "DNGVersion"),
		UniqueCameraModel: field(rec, "UniqueCameraModel"),
	}
}

// field stringifies one tag value, defaulting to "Unknown" when the tag
// is absent.
func field(rec rawRecord, key string) string {
	v, ok := rec[key]
	if !ok || v == nil {
		return "Unknown"
	}
	switch x := v.(type) {
	case string:
		if x == "" {
			return "Unknown"
		}
		return x
	case float64:
		// JSON numbers arrive as float64; render integral tags (ISO,
		// ColorSpace) without a decimal point.
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return "Unknown"
	}
}
