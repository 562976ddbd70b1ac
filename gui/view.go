package gui

import (
	"image"
	"image/color"
)

// ViewWidth is the number of bytes in each row of the byte view
const ViewWidth = 128

// View draws the image data as a grey-level byte map, one pixel per byte and
// ViewWidth bytes per row. If dst is nil or the wrong size then a new RGBA
// image is allocated. The byte view makes no attempt to decode the data
// according to the video mode
func (img Image) View(dst *image.RGBA) *image.RGBA {
	h := (len(img.Data) + ViewWidth - 1) / ViewWidth
	bounds := image.Rect(0, 0, ViewWidth, h)

	if dst == nil || dst.Bounds() != bounds {
		dst = image.NewRGBA(bounds)
	}

	for i := range ViewWidth * h {
		var c color.RGBA
		if i < len(img.Data) {
			v := img.Data[i]
			c = color.RGBA{R: v, G: v, B: v, A: 255}
		} else {
			c = color.RGBA{A: 255}
		}
		dst.SetRGBA(i%ViewWidth, i/ViewWidth, c)
	}

	return dst
}
