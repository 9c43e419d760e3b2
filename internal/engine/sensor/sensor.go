// Package sensor synthesizes raw sensor data in place of real LibRaw
// extraction. Dimensions are guessed from file size and plane values are
// seeded pseudo-random noise; this is a documented stand-in, not a
// decoder.
package sensor

import (
	"math/rand"

	"github.com/taku2365/llm-camera/internal/model"
)

// DefaultSeed keeps repeated runs byte-identical.
const DefaultSeed = 42

// Size thresholds (MB) for the dimension presets. iPhone 12 Pro Max
// ProRAW files cluster by lens: telephoto and ultra-wide frames are
// portrait 3024x4032, the main camera is landscape 4032x3024 and
// noticeably larger on disk.
const (
	telephotoMaxMB = 15
	ultraWideMaxMB = 20
)

// Preset is one of the fixed dimension guesses.
type Preset struct {
	Width  int
	Height int
	Label  string
}

// PresetFor maps a file size to a dimension preset.
func PresetFor(sizeBytes int64) Preset {
	sizeMB := float64(sizeBytes) / (1024 * 1024)
	switch {
	case sizeMB < telephotoMaxMB:
		return Preset{Width: 3024, Height: 4032, Label: "telephoto"}
	case sizeMB < ultraWideMaxMB:
		return Preset{Width: 3024, Height: 4032, Label: "ultra-wide"}
	default:
		return Preset{Width: 4032, Height: 3024, Label: "wide"}
	}
}

// Generator produces synthetic sensor samples.
type Generator struct {
	seed int64
}

// New returns a Generator with the given seed. Seed 0 falls back to
// DefaultSeed.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Generator{seed: seed}
}

// Generate synthesizes a sensor sample for a file of the given size:
// four half-resolution Bayer planes plus a full-resolution RGB preview,
// values uniform in [0,1). The PRNG is re-seeded per call, so output is
// deterministic per (seed, preset).
func (g *Generator) Generate(sizeBytes int64) model.SensorSample {
	p := PresetFor(sizeBytes)
	return g.generate(p.Width, p.Height)
}

// GenerateDims synthesizes a sample at explicit dimensions, used when
// the DNG header probe recovered the real ones.
func (g *Generator) GenerateDims(width, height int) model.SensorSample {
	return g.generate(width, height)
}

func (g *Generator) generate(width, height int) model.SensorSample {
	rng := rand.New(rand.NewSource(g.seed))

	bw, bh := width/2, height/2
	bayer := make([]float32, 4*bh*bw)
	for i := range bayer {
		bayer[i] = rng.Float32()
	}

	preview := make([]float32, 3*height*width)
	for i := range preview {
		preview[i] = rng.Float32()
	}

	return model.SensorSample{
		Bayer:   bayer,
		Preview: preview,
		Width:   width,
		Height:  height,
	}
}
