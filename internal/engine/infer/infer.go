// Package infer runs the one-pass inference smoke test: load a
// pre-built ONNX artifact, feed it a cropped subset of the assembled
// input bundle, and report whether the model accepted the tensors. No
// failure propagates; everything is folded into an InferenceResult.
package infer

import (
	"fmt"
	"log/slog"
	"os"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/taku2365/llm-camera/internal/engine/assemble"
	"github.com/taku2365/llm-camera/internal/model"
)

// smokeEdge is the fixed spatial extent the smoke-test artifact
// expects: the raw tensor is cropped to [1,4,112,112].
const smokeEdge = 112

// smokeInputs is the reduced tensor subset the artifact takes, in its
// declared input order.
var smokeInputs = []string{assemble.InputRaw, assemble.InputWB, assemble.InputDevice}

// Runner executes smoke tests against a single model artifact. The
// session is created lazily on first use and reused across files.
type Runner struct {
	modelPath string
	session   *onnxSession
	loadErr   error
	loaded    bool
}

// New returns a Runner for the given artifact path. An empty path means
// every Run reports a skipped result.
func New(modelPath string) *Runner {
	return &Runner{modelPath: modelPath}
}

// Available reports whether the artifact file exists.
func (r *Runner) Available() bool {
	if r.modelPath == "" {
		return false
	}
	_, err := os.Stat(r.modelPath)
	return err == nil
}

// Run crops the bundle to the artifact's fixed input size and executes
// one forward pass. A missing artifact yields a skipped result; any
// load or inference error (including a runtime panic out of the cgo
// layer) yields a failed result with the error text.
func (r *Runner) Run(bundle model.InputBundle) (res model.InferenceResult) {
	if !r.Available() {
		slog.Debug("model artifact not found, skipping inference", "path", r.modelPath)
		return model.InferenceResult{Status: model.InferenceSkipped}
	}

	defer func() {
		if p := recover(); p != nil {
			res = model.InferenceResult{
				Status: model.InferenceFailed,
				Error:  fmt.Sprintf("panic during inference: %v", p),
			}
		}
	}()

	if !r.loaded {
		r.session, r.loadErr = newONNXSession(r.modelPath, smokeInputs)
		r.loaded = true
	}
	if r.loadErr != nil {
		return model.InferenceResult{Status: model.InferenceFailed, Error: r.loadErr.Error()}
	}

	inputs, cleanup, err := r.prepare(bundle)
	if err != nil {
		return model.InferenceResult{Status: model.InferenceFailed, Error: err.Error()}
	}
	defer cleanup()

	data, shape, err := r.session.infer(inputs)
	if err != nil {
		return model.InferenceResult{Status: model.InferenceFailed, Error: err.Error()}
	}

	lo, hi := minMax(data)
	return model.InferenceResult{
		Status:      model.InferenceOK,
		OutputShape: shape,
		OutputMin:   lo,
		OutputMax:   hi,
		Provider:    "CPUExecutionProvider",
	}
}

// Close releases the cached session, if any.
func (r *Runner) Close() error {
	if r.session != nil {
		return r.session.close()
	}
	return nil
}

// prepare builds the ort input tensors for the smoke subset: raw
// cropped to the fixed edge, wb and device passed through.
func (r *Runner) prepare(bundle model.InputBundle) ([]ort.Value, func(), error) {
	raw, ok := bundle.Get(assemble.InputRaw)
	if !ok {
		return nil, nil, fmt.Errorf("infer: bundle missing %q tensor", assemble.InputRaw)
	}
	wb, ok := bundle.Get(assemble.InputWB)
	if !ok {
		return nil, nil, fmt.Errorf("infer: bundle missing %q tensor", assemble.InputWB)
	}
	device, ok := bundle.Get(assemble.InputDevice)
	if !ok {
		return nil, nil, fmt.Errorf("infer: bundle missing %q tensor", assemble.InputDevice)
	}

	h, w := int(raw.Shape[2]), int(raw.Shape[3])
	if h < smokeEdge || w < smokeEdge {
		return nil, nil, fmt.Errorf("infer: raw planes %dx%d smaller than crop %d", w, h, smokeEdge)
	}
	cropped := cropPlanes(raw.F32, int(raw.Shape[1]), h, w, smokeEdge)

	var created []ort.Value
	cleanup := func() {
		for _, v := range created {
			v.Destroy()
		}
	}

	tRaw, err := ort.NewTensor(ort.NewShape(1, raw.Shape[1], smokeEdge, smokeEdge), cropped)
	if err != nil {
		return nil, nil, fmt.Errorf("infer: create raw tensor: %w", err)
	}
	created = append(created, tRaw)

	tWB, err := ort.NewTensor(ort.NewShape(wb.Shape...), wb.F32)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("infer: create wb tensor: %w", err)
	}
	created = append(created, tWB)

	tDevice, err := ort.NewTensor(ort.NewShape(device.Shape...), device.I32)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("infer: create device tensor: %w", err)
	}
	created = append(created, tDevice)

	return []ort.Value{tRaw, tWB, tDevice}, cleanup, nil
}

// cropPlanes copies the top-left edge x edge window out of each plane of
// a flat [planes, h, w] array.
func cropPlanes(data []float32, planes, h, w, edge int) []float32 {
	out := make([]float32, planes*edge*edge)
	for p := 0; p < planes; p++ {
		for y := 0; y < edge; y++ {
			src := p*h*w + y*w
			dst := p*edge*edge + y*edge
			copy(out[dst:dst+edge], data[src:src+edge])
		}
	}
	return out
}

func minMax(data []float32) (lo, hi float32) {
	if len(data) == 0 {
		return 0, 0
	}
	lo, hi = data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
