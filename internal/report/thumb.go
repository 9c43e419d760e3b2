package report

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/nfnt/resize"

	"github.com/taku2365/llm-camera/internal/model"
)

// WriteThumb renders the synthetic preview planes to an 8-bit PNG
// downscaled so the longer edge is at most maxEdge pixels. Useful for
// eyeballing that plane ordering and value ranges look sane.
func WriteThumb(path string, sample model.SensorSample, maxEdge int) error {
	w, h := sample.Width, sample.Height
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	plane := h * w
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			img.SetNRGBA(x, y, color.NRGBA{
				R: to8(sample.Preview[i]),
				G: to8(sample.Preview[plane+i]),
				B: to8(sample.Preview[2*plane+i]),
				A: 0xff,
			})
		}
	}

	var thumb image.Image = img
	if w > maxEdge || h > maxEdge {
		if w >= h {
			thumb = resize.Resize(uint(maxEdge), 0, img, resize.Bilinear)
		} else {
			thumb = resize.Resize(0, uint(maxEdge), img, resize.Bilinear)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create thumb %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, thumb); err != nil {
		return fmt.Errorf("report: encode thumb: %w", err)
	}
	return nil
}

// to8 maps a [0,1) float to an 8-bit channel value.
func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v * 256)
}
