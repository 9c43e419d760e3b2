package assemble

import (
	"math"
	"testing"

	"github.com/taku2365/llm-camera/internal/engine/sensor"
	"github.com/taku2365/llm-camera/internal/model"
)

func sample(w, h int) model.SensorSample {
	return sensor.New(sensor.DefaultSeed).GenerateDims(w, h)
}

func TestBuildNamesAndShapes(t *testing.T) {
	s := sample(64, 48)
	b := Build(s, model.DefaultShotMeta(s.Width, s.Height))

	wantNames := []string{InputRaw, InputRawFull, InputWB, InputDevice, InputISO, InputExp}
	names := b.Names()
	if len(names) != len(wantNames) {
		t.Fatalf("expected %d tensors, got %d: %v", len(wantNames), len(names), names)
	}
	for i, want := range wantNames {
		if names[i] != want {
			t.Errorf("tensor %d = %q, want %q", i, names[i], want)
		}
	}

	wantShapes := map[string][]int64{
		InputRaw:     {1, 4, 24, 32},
		InputRawFull: {1, 3, 48, 64},
		InputWB:      {1, 4},
		InputDevice:  {1},
		InputISO:     {1},
		InputExp:     {1},
	}
	for name, want := range wantShapes {
		tensor, ok := b.Get(name)
		if !ok {
			t.Fatalf("missing tensor %q", name)
		}
		if len(tensor.Shape) != len(want) {
			t.Fatalf("%s: shape %v, want %v", name, tensor.Shape, want)
		}
		for i := range want {
			if tensor.Shape[i] != want[i] {
				t.Errorf("%s: shape %v, want %v", name, tensor.Shape, want)
				break
			}
		}
	}
}

func TestBuildShapesFollowResolution(t *testing.T) {
	// Channel counts and batch dim are fixed; spatial extents track the
	// sample.
	s := sample(128, 96)
	b := Build(s, model.DefaultShotMeta(s.Width, s.Height))

	raw, _ := b.Get(InputRaw)
	if raw.Shape[2] != 48 || raw.Shape[3] != 64 {
		t.Errorf("raw shape = %v, want [1 4 48 64]", raw.Shape)
	}
	full, _ := b.Get(InputRawFull)
	if full.Shape[2] != 96 || full.Shape[3] != 128 {
		t.Errorf("raw_full shape = %v, want [1 3 96 128]", full.Shape)
	}
}

func TestBuildScalarTransforms(t *testing.T) {
	s := sample(64, 48)
	meta := model.DefaultShotMeta(s.Width, s.Height) // ISO 100, 1/60s
	b := Build(s, meta)

	iso, _ := b.Get(InputISO)
	if got := iso.F32[0]; math.Abs(float64(got)-0.1) > 1e-6 {
		t.Errorf("iso = %v, want 0.1", got)
	}

	exp, _ := b.Get(InputExp)
	want := math.Log2(1.0 / 60.0) // ≈ -5.907
	if got := float64(exp.F32[0]); math.Abs(got-want) > 1e-3 {
		t.Errorf("exp = %v, want %v", got, want)
	}

	device, _ := b.Get(InputDevice)
	if device.I32[0] != 2 {
		t.Errorf("device = %d, want 2", device.I32[0])
	}
}

func TestBuildWBVector(t *testing.T) {
	s := sample(64, 48)

	t.Run("exact four coefficients", func(t *testing.T) {
		meta := model.DefaultShotMeta(s.Width, s.Height)
		b := Build(s, meta)
		wb, _ := b.Get(InputWB)
		want := []float32{2.0, 1.0, 1.0, 1.5}
		for i := range want {
			if wb.F32[i] != want[i] {
				t.Errorf("wb[%d] = %v, want %v", i, wb.F32[i], want[i])
			}
		}
	})

	t.Run("short vector zero-padded", func(t *testing.T) {
		meta := model.DefaultShotMeta(s.Width, s.Height)
		meta.WBCoeffs = []float64{1.8, 1.0}
		b := Build(s, meta)
		wb, _ := b.Get(InputWB)
		if len(wb.F32) != 4 {
			t.Fatalf("len(wb) = %d, want 4", len(wb.F32))
		}
		if wb.F32[2] != 0 || wb.F32[3] != 0 {
			t.Errorf("expected zero padding, got %v", wb.F32)
		}
	})

	t.Run("long vector truncated", func(t *testing.T) {
		meta := model.DefaultShotMeta(s.Width, s.Height)
		meta.WBCoeffs = []float64{1, 2, 3, 4, 5, 6}
		b := Build(s, meta)
		wb, _ := b.Get(InputWB)
		if len(wb.F32) != 4 {
			t.Fatalf("len(wb) = %d, want 4", len(wb.F32))
		}
	})
}

func TestBuildSharesPlaneData(t *testing.T) {
	// The batch dimension is a reshape, not a copy.
	s := sample(64, 48)
	b := Build(s, model.DefaultShotMeta(s.Width, s.Height))
	raw, _ := b.Get(InputRaw)
	if &raw.F32[0] != &s.Bayer[0] {
		t.Error("expected raw tensor to alias sample.Bayer")
	}
}
