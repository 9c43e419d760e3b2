package model

import "time"

// RawFile describes one raw image file found during a scan. It combines
// file-system stats with a filename-derived lens label and optional
// enrichment from exiftool and the native DNG header probe. Built once
// per run and never mutated afterwards.
type RawFile struct {
	Path      string    `json:"-"`
	Name      string    `json:"filename"`
	SizeBytes int64     `json:"-"`
	SizeMB    float64   `json:"size_mb"`
	ModTime   time.Time `json:"modified"`
	Lens      string    `json:"lens"`

	Exif *Exif    `json:"exif,omitempty"`
	DNG  *DNGInfo `json:"dng,omitempty"`
}

// Exif holds the subset of exiftool output the inspector cares about.
// Values are kept as strings because exiftool formats them for humans
// ("1/60", "4.2 mm"); missing fields report as "Unknown".
type Exif struct {
	Make              string `json:"make"`
	Model             string `json:"model"`
	Software          string `json:"software"`
	LensModel         string `json:"lens"`
	ISO               string `json:"iso"`
	ShutterSpeed      string `json:"shutter_speed"`
	Aperture          string `json:"aperture"`
	FocalLength       string `json:"focal_length"`
	ColorSpace        string `json:"color_space"`
	DNGVersion        string `json:"dng_version"`
	UniqueCameraModel string `json:"unique_camera_model"`
}

// DNGInfo is what the native TIFF header probe can read without
// decoding pixels.
type DNGInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Make   string `json:"make,omitempty"`
	Model  string `json:"model,omitempty"`
	Linear bool   `json:"linear"`
}
