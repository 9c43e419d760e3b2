package model

// InspectRecord is one per-file entry in the inspector report. Field
// names follow the report format consumed by the llm-camera notebooks.
type InspectRecord struct {
	RawFile
	LibRawCompatible bool     `json:"libraw_compatible"`
	Notes            []string `json:"metaisp_notes"`
	DeviceID         *int32   `json:"metaisp_device_id,omitempty"`
}

// InspectReport is the inspector's JSON document, written once per run.
type InspectReport struct {
	TestDate    string          `json:"test_date"`
	Description string          `json:"test_description"`
	Files       []InspectRecord `json:"files"`
}

// InferenceStatus classifies the outcome of one smoke-test pass.
type InferenceStatus string

const (
	// InferenceOK means the model accepted the inputs and produced output.
	InferenceOK InferenceStatus = "ok"
	// InferenceFailed means loading or running the model errored.
	InferenceFailed InferenceStatus = "failed"
	// InferenceSkipped means no model artifact was available.
	InferenceSkipped InferenceStatus = "skipped"
)

// InferenceResult captures one forward pass, successful or not. Errors
// are recorded here rather than propagated.
type InferenceResult struct {
	Status      InferenceStatus `json:"status"`
	OutputShape []int64         `json:"output_shape,omitempty"`
	OutputMin   float32         `json:"output_min,omitempty"`
	OutputMax   float32         `json:"output_max,omitempty"`
	Provider    string          `json:"provider,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// Success reports whether the pass ran and the model produced output.
func (r InferenceResult) Success() bool { return r.Status == InferenceOK }

// SimulateRecord is one per-file entry in the simulator report.
type SimulateRecord struct {
	Filename   string          `json:"filename"`
	BayerShape []int64         `json:"bayer_shape"`
	RGBShape   []int64         `json:"rgb_shape"`
	Meta       ShotMeta        `json:"metadata"`
	Inference  InferenceResult `json:"onnx_test"`
}

// SimulateReport is the simulator's JSON document.
type SimulateReport struct {
	TestDate string           `json:"test_date"`
	TestType string           `json:"test_type"`
	Runtime  string           `json:"onnx_runtime,omitempty"`
	Files    []SimulateRecord `json:"files"`
}
