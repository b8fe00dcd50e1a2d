package images

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// Listing photos are normalized to a 4:3 card.
const (
	cardWidth  = 800
	cardHeight = 600
)

// Processor rewrites an uploaded photo in place: center-crop to the card
// aspect ratio, then scale to the card size. Callers treat failure as
// non-fatal; the crop listing stays valid with the raw upload.
type Processor interface {
	Process(path string) error
}

type CardProcessor struct{}

func NewCardProcessor() *CardProcessor {
	return &CardProcessor{}
}

func (p *CardProcessor) Process(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	src, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	cropped := centerCrop(src, cardWidth, cardHeight)

	dst := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, cropped, draw.Src, nil)

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	switch {
	case format == "png" || strings.EqualFold(filepath.Ext(path), ".png"):
		return png.Encode(out, dst)
	default:
		return jpeg.Encode(out, dst, &jpeg.Options{Quality: 85})
	}
}

// centerCrop returns the largest centered rectangle of src matching the
// target aspect ratio.
func centerCrop(src image.Image, targetW, targetH int) image.Rectangle {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	cropW, cropH := w, h
	if w*targetH > h*targetW {
		cropW = h * targetW / targetH
	} else {
		cropH = w * targetH / targetW
	}

	x0 := b.Min.X + (w-cropW)/2
	y0 := b.Min.Y + (h-cropH)/2
	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}
