// Package assemble turns a sensor sample and capture metadata into the
// fixed named-tensor bundle the neural ISP model expects.
package assemble

import (
	"math"

	"github.com/taku2365/llm-camera/internal/model"
)

// Fixed input names, in model input order.
const (
	InputRaw     = "raw"
	InputRawFull = "raw_full"
	InputWB      = "wb"
	InputDevice  = "device"
	InputISO     = "iso"
	InputExp     = "exp"
)

// isoScale normalizes camera ISO to roughly unit range (ISO 1000 → 1.0).
const isoScale = 1000.0

// wbWidth is the fixed white-balance vector width (R, G1, G2, B gains).
const wbWidth = 4

// Build assembles the six-tensor input bundle:
//
//	raw      [1,4,H/2,W/2] float32  Bayer planes with batch dimension
//	raw_full [1,3,H,W]     float32  bilinear RGB with batch dimension
//	wb       [1,4]         float32  white-balance gains
//	device   [1]           int32    device identifier
//	iso      [1]           float32  ISO / 1000
//	exp      [1]           float32  log2(exposure seconds)
//
// The set of names, the transforms, and the shapes are fixed; only the
// spatial extents follow the sample resolution.
func Build(sample model.SensorSample, meta model.ShotMeta) model.InputBundle {
	bh, bw := int64(sample.BayerHeight()), int64(sample.BayerWidth())
	h, w := int64(sample.Height), int64(sample.Width)

	wb := make([]float32, wbWidth)
	for i := 0; i < wbWidth && i < len(meta.WBCoeffs); i++ {
		wb[i] = float32(meta.WBCoeffs[i])
	}

	return model.InputBundle{Tensors: []model.Tensor{
		{Name: InputRaw, Shape: []int64{1, 4, bh, bw}, F32: sample.Bayer},
		{Name: InputRawFull, Shape: []int64{1, 3, h, w}, F32: sample.Preview},
		{Name: InputWB, Shape: []int64{1, wbWidth}, F32: wb},
		{Name: InputDevice, Shape: []int64{1}, I32: []int32{meta.DeviceID}},
		{Name: InputISO, Shape: []int64{1}, F32: []float32{float32(meta.ISO / isoScale)}},
		{Name: InputExp, Shape: []int64{1}, F32: []float32{float32(math.Log2(meta.Exposure))}},
	}}
}
