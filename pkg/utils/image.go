package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// FrameToImage converts a 160x144 frame of RGB pixels, indexed
// [y][x], to an image.
func FrameToImage(frame *[144][160][3]uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 160, 144))
	for y := range frame {
		for x, p := range frame[y] {
			img.SetRGBA(x, y, color.RGBA{R: p[0], G: p[1], B: p[2], A: 0xFF})
		}
	}
	return img
}

// Scale scales img by factor using nearest neighbour sampling, which
// keeps pixel edges sharp.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// EncodeImage encodes img to w in the format named by ext, either
// ".png" or ".bmp".
func EncodeImage(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", ext)
	}
}

// SaveImage saves img to filename, choosing the format from the
// file extension.
func SaveImage(filename string, img image.Image) error {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".png"
		filename += ext
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := EncodeImage(file, img, ext); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
