package model

// SensorSample is one synthesized stand-in for a LibRaw extraction:
// four half-resolution Bayer planes (R, Gr, Gb, B) plus a full-resolution
// bilinear RGB preview. Plane data is stored flat in CHW order.
type SensorSample struct {
	// Bayer holds 4 * (Height/2) * (Width/2) float32 values in [0,1).
	Bayer []float32
	// Preview holds 3 * Height * Width float32 values in [0,1).
	Preview []float32
	// Width and Height are the full sensor dimensions.
	Width  int
	Height int
}

// BayerWidth returns the per-plane width of the mosaiced data.
func (s SensorSample) BayerWidth() int { return s.Width / 2 }

// BayerHeight returns the per-plane height of the mosaiced data.
func (s SensorSample) BayerHeight() int { return s.Height / 2 }

// ShotMeta carries the capture metadata fed to the input assembler.
// The zero value is not useful; use DefaultShotMeta for the synthetic
// iPhone profile.
type ShotMeta struct {
	ISO         float64   `json:"iso"`
	Exposure    float64   `json:"exposure"`
	WBCoeffs    []float64 `json:"wb_coeffs"`
	DeviceID    int32     `json:"device_id"`
	CameraModel string    `json:"camera_model"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
}

// DefaultShotMeta returns the synthetic capture profile used when no
// real metadata is available: ISO 100, 1/60s, daylight white balance,
// device id 2 (iPhone).
func DefaultShotMeta(width, height int) ShotMeta {
	return ShotMeta{
		ISO:         100,
		Exposure:    1.0 / 60.0,
		WBCoeffs:    []float64{2.0, 1.0, 1.0, 1.5},
		DeviceID:    2,
		CameraModel: "iPhone 12 Pro Max",
		Width:       width,
		Height:      height,
	}
}

// Tensor is one named model input: flat data plus its shape.
// Exactly one of F32 and I32 is non-nil.
type Tensor struct {
	Name  string
	Shape []int64
	F32   []float32
	I32   []int32
}

// InputBundle is the fixed set of named tensors the neural ISP model
// expects. Order matters: it mirrors the model's declared input order.
type InputBundle struct {
	Tensors []Tensor
}

// Get returns the tensor with the given name, or false if absent.
func (b InputBundle) Get(name string) (Tensor, bool) {
	for _, t := range b.Tensors {
		if t.Name == name {
			return t, true
		}
	}
	return Tensor{}, false
}

// Names returns the tensor names in bundle order.
func (b InputBundle) Names() []string {
	names := make([]string, len(b.Tensors))
	for i, t := range b.Tensors {
		names[i] = t.Name
	}
	return names
}
