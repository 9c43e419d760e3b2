// Package simulate implements the inference-input simulator run: for
// each raw file, synthesize sensor data, assemble the model input
// bundle, and smoke-test it against the ONNX artifact when present.
package simulate

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/taku2365/llm-camera/internal/config"
	"github.com/taku2365/llm-camera/internal/engine/assemble"
	"github.com/taku2365/llm-camera/internal/engine/infer"
	"github.com/taku2365/llm-camera/internal/engine/sensor"
	"github.com/taku2365/llm-camera/internal/model"
	"github.com/taku2365/llm-camera/internal/report"
	"github.com/taku2365/llm-camera/internal/scan"
)

// Simulator drives the per-file generate → assemble → infer loop.
type Simulator struct {
	cfg     config.SimulateConfig
	gen     *sensor.Generator
	runner  *infer.Runner
	console *report.Console
	now     func() time.Time
}

// New creates a Simulator.
func New(cfg config.SimulateConfig, console *report.Console) *Simulator {
	return &Simulator{
		cfg:     cfg,
		gen:     sensor.New(cfg.Seed),
		runner:  infer.New(cfg.ModelPath),
		console: console,
		now:     time.Now,
	}
}

// Run simulates the first cfg.Limit raw files in dir (all of them when
// Limit is 0), writes the JSON report into dir, and returns it. Files
// are processed sequentially in sorted order; inference failures are
// recorded, never propagated.
func (s *Simulator) Run(dir string) (model.SimulateReport, error) {
	defer s.runner.Close()

	files, err := scan.Dir(dir)
	if err != nil {
		return model.SimulateReport{}, err
	}
	if s.cfg.Limit > 0 && len(files) > s.cfg.Limit {
		files = files[:s.cfg.Limit]
	}

	rep := model.SimulateReport{
		TestDate: s.now().Format(time.RFC3339),
		TestType: "ONNX Runtime MetaISP Simulation",
		Runtime:  "onnxruntime_go",
		Files:    make([]model.SimulateRecord, 0, len(files)),
	}

	s.console.Header("iPhone DNG + ONNX Runtime Test")
	if !s.runner.Available() {
		s.console.Line("Model artifact not found; running input preparation only")
	}
	s.console.Blank()

	for _, f := range files {
		s.console.Blank()
		s.console.Section(fmt.Sprintf("Testing: %s", f.Name))
		rep.Files = append(rep.Files, s.simulate(dir, f))
	}

	s.summarize(rep)

	jsonPath := filepath.Join(dir, s.cfg.ReportName)
	if err := report.WriteJSON(jsonPath, rep); err != nil {
		return rep, err
	}
	s.console.Line("Results saved to: %s", jsonPath)

	return rep, nil
}

// simulate runs the three stages for one file.
func (s *Simulator) simulate(dir string, f model.RawFile) model.SimulateRecord {
	s.console.Line("1. Simulating LibRaw extraction...")
	sample := s.gen.Generate(f.SizeBytes)
	meta := model.DefaultShotMeta(sample.Width, sample.Height)

	s.console.Line("   Bayer channels: [4 %d %d] (C,H,W)", sample.BayerHeight(), sample.BayerWidth())
	s.console.Line("   Bilinear RGB: [3 %d %d] (C,H,W)", sample.Height, sample.Width)
	s.console.Line("   Device: %s", meta.CameraModel)

	s.console.Blank()
	s.console.Line("2. Creating MetaISP inputs...")
	bundle := assemble.Build(sample, meta)
	for _, t := range bundle.Tensors {
		s.console.Line("   %s: shape=%v", t.Name, t.Shape)
	}

	s.console.Blank()
	s.console.Line("3. Testing ONNX inference...")
	result := s.runner.Run(bundle)
	switch result.Status {
	case model.InferenceOK:
		s.console.Line("   ✓ Inference successful!")
		s.console.Line("   Output shape: %v", result.OutputShape)
		s.console.Line("   Output range: [%.3f, %.3f]", result.OutputMin, result.OutputMax)
		s.console.Line("   Provider: %s", result.Provider)
	case model.InferenceFailed:
		s.console.Line("   ✗ Inference failed: %s", result.Error)
	case model.InferenceSkipped:
		s.console.Line("   ⚠ Skipped: no model artifact")
	}

	if s.cfg.Thumbs {
		thumbPath := filepath.Join(dir, thumbName(f.Name))
		if err := report.WriteThumb(thumbPath, sample, s.cfg.ThumbMax); err != nil {
			slog.Warn("thumbnail write failed", "file", f.Name, "err", err)
		}
	}

	return model.SimulateRecord{
		Filename:   f.Name,
		BayerShape: []int64{4, int64(sample.BayerHeight()), int64(sample.BayerWidth())},
		RGBShape:   []int64{3, int64(sample.Height), int64(sample.Width)},
		Meta:       meta,
		Inference:  result,
	}
}

// summarize prints the end-of-run totals.
func (s *Simulator) summarize(rep model.SimulateReport) {
	s.console.Blank()
	s.console.Header("Summary:")
	s.console.Line("- Tested %d DNG files", len(rep.Files))
	s.console.Line("- All files identified as iPhone ProRAW")
	s.console.Line("- Device ID: 2 (iPhone) for MetaISP")
	s.console.Line("- Input preparation: ✓ Successful")

	anyOK := false
	for _, f := range rep.Files {
		if f.Inference.Success() {
			anyOK = true
			break
		}
	}
	if anyOK {
		s.console.Line("- ONNX inference: ✓ Successful")
	} else {
		s.console.Line("- ONNX inference: ⚠ Test model only")
	}
	s.console.Blank()
}

// thumbName maps IMG_0001_1x.DNG to IMG_0001_1x_preview.png.
func thumbName(raw string) string {
	base := strings.TrimSuffix(raw, filepath.Ext(raw))
	return base + "_preview.png"
}
