package minvideo

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"image/color"
	"image/jpeg"
	"image/png"
)

// Returns a copy of the frame as an opaque RGBA image.
func (frame *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.width, frame.height))
	index := 0
	for h := 0; h < frame.height; h++ {
		for w := 0; w < frame.width; w++ {
			c := frame.pixels[index]
			img.SetRGBA(w, h, color.RGBA{c.R, c.G, c.B, 255})
			index++
		}
	}
	return img
}

// Creates a frame from any image. Alpha is dropped.
func FrameFromImage(img image.Image) (*Frame, error) {
	bounds := img.Bounds()
	frame, err := NewFrame(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	index := 0
	for h := bounds.Min.Y; h < bounds.Max.Y; h++ {
		for w := bounds.Min.X; w < bounds.Max.X; w++ {
			r, g, b, _ := img.At(w, h).RGBA()
			frame.pixels[index] = Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
			index++
		}
	}
	return frame, nil
}

// Reads an image file into a frame. Currently only supports png and jpeg.
func ReadImage(filename string) (*Frame, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("minvideo: failed to decode %s: %w", filename, err)
	}
	return FrameFromImage(img)
}

// Writes a frame to an image file. Currently only supports png and jpeg.
func WriteImage(filename string, frame *Frame) error {
	ext := filepath.Ext(filename)
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return fmt.Errorf("minvideo: unsupported file extension: %s", ext)
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	img := frame.Image()
	switch ext {
	case ".png":
		err = png.Encode(f, img)
	default:
		err = jpeg.Encode(f, img, nil)
	}
	if err != nil {
		return fmt.Errorf("minvideo: failed to encode %s: %w", filename, err)
	}
	return nil
}
