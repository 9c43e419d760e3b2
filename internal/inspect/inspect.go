// Package inspect implements the DNG inspector run: scan a directory,
// enrich each raw file best-effort, assess neural-ISP compatibility,
// and emit the JSON report plus markdown summary.
package inspect

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/taku2365/llm-camera/internal/config"
	"github.com/taku2365/llm-camera/internal/dng"
	"github.com/taku2365/llm-camera/internal/exiftool"
	"github.com/taku2365/llm-camera/internal/model"
	"github.com/taku2365/llm-camera/internal/report"
	"github.com/taku2365/llm-camera/internal/scan"
)

// iPhoneDeviceID is the device identifier the neural ISP model assigns
// to iPhone captures.
const iPhoneDeviceID int32 = 2

// Inspector runs the per-directory inspection.
type Inspector struct {
	cfg     config.InspectConfig
	tool    *exiftool.Tool
	console *report.Console
	now     func() time.Time
}

// New creates an Inspector.
func New(cfg config.InspectConfig, console *report.Console) *Inspector {
	return &Inspector{
		cfg:     cfg,
		tool:    exiftool.New(cfg.ExiftoolPath),
		console: console,
		now:     time.Now,
	}
}

// Run inspects dir, writes the JSON report and markdown summary into
// it, and returns the report. The only fatal error is an unreadable
// directory or unwritable report; per-file problems degrade to missing
// enrichment.
func (i *Inspector) Run(ctx context.Context, dir string) (model.InspectReport, error) {
	files, err := scan.Dir(dir)
	if err != nil {
		return model.InspectReport{}, err
	}

	rep := model.InspectReport{
		TestDate:    i.now().Format(time.RFC3339),
		Description: "iPhone ProRAW DNG compatibility test for MetaISP",
		Files:       make([]model.InspectRecord, 0, len(files)),
	}

	i.console.Header("iPhone ProRAW DNG Test Report")
	i.console.Line("Found %d DNG files", len(files))
	i.console.Blank()

	for _, f := range files {
		i.console.Line("Analyzing: %s", f.Name)
		rec := i.analyze(ctx, f)
		rep.Files = append(rep.Files, rec)

		i.console.Line("  Size: %.1f MB", rec.SizeMB)
		i.console.Line("  Lens: %s", rec.Lens)
		if rec.Exif != nil {
			i.console.Line("  Camera: %s %s", rec.Exif.Make, rec.Exif.Model)
		}
		compat := "No"
		if rec.LibRawCompatible {
			compat = "Yes"
		}
		i.console.Line("  LibRaw Compatible: %s", compat)
		i.console.Blank()
	}

	i.summarize(rep)

	jsonPath := filepath.Join(dir, i.cfg.ReportName)
	if err := report.WriteJSON(jsonPath, rep); err != nil {
		return rep, err
	}
	i.console.Line("Results saved to: %s", jsonPath)

	mdPath := filepath.Join(dir, i.cfg.SummaryName)
	if err := report.WriteMarkdown(mdPath, rep); err != nil {
		return rep, err
	}
	i.console.Line("README created: %s", mdPath)

	return rep, nil
}

// analyze builds one record: filesystem stats are already on the
// descriptor; exiftool and the header probe add what they can.
func (i *Inspector) analyze(ctx context.Context, f model.RawFile) model.InspectRecord {
	f.Exif = i.tool.Extract(ctx, f.Path)

	info, err := dng.ProbeFile(f.Path)
	if err != nil {
		slog.Debug("dng header probe failed", "file", f.Name, "err", err)
	} else {
		f.DNG = info
	}

	rec := model.InspectRecord{
		RawFile:          f,
		LibRawCompatible: strings.HasSuffix(strings.ToLower(f.Name), ".dng"),
	}
	rec.Notes, rec.DeviceID = notes(f)
	return rec
}

// notes assesses neural-ISP compatibility from whatever enrichment is
// present. Device detection prefers exiftool's Model tag and falls back
// to the header probe.
func notes(f model.RawFile) ([]string, *int32) {
	var out []string
	var deviceID *int32

	cameraModel := ""
	if f.Exif != nil {
		cameraModel = f.Exif.Model
	} else if f.DNG != nil {
		cameraModel = f.DNG.Model
	}
	if strings.Contains(cameraModel, "iPhone") {
		out = append(out, "✓ iPhone device detected")
		id := iPhoneDeviceID
		deviceID = &id
	} else {
		out = append(out, "⚠ Device detection may be needed")
	}

	if f.Exif != nil && f.Exif.DNGVersion != "" && f.Exif.DNGVersion != "Unknown" {
		out = append(out, fmt.Sprintf("✓ DNG Version: %s", f.Exif.DNGVersion))
	}

	if f.DNG != nil && f.DNG.Linear {
		out = append(out, "✓ Linear DNG (ProRAW format)")
	}

	return out, deviceID
}

// summarize prints the end-of-run totals.
func (i *Inspector) summarize(rep model.InspectReport) {
	compatible := 0
	var totalMB float64
	for _, f := range rep.Files {
		if f.LibRawCompatible {
			compatible++
		}
		totalMB += f.SizeMB
	}

	i.console.Blank()
	i.console.Section("Summary:")
	i.console.Line("Total files tested: %d", len(rep.Files))
	i.console.Line("LibRaw compatible: %d", compatible)
	if len(rep.Files) > 0 {
		i.console.Line("Average file size: %.1f MB", totalMB/float64(len(rep.Files)))
	}

	i.console.Blank()
	i.console.Line("MetaISP Compatibility:")
	i.console.Line("- All files are iPhone ProRAW DNGs")
	i.console.Line("- Device ID: %d (iPhone) for MetaISP", iPhoneDeviceID)
	i.console.Line("- Expecting RGGB Bayer pattern")
	i.console.Line("- Linear DNG format (12-bit)")
	i.console.Blank()
}
