package convert

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// layout describes how a source rectangle lands on the resized canvas.
type layout struct {
	canvas image.Rectangle // full destination image
	dest   image.Rectangle // area of canvas the source is scaled into
	src    image.Rectangle // area of the source that is used
	fill   bool            // canvas is larger than dest and needs a background
}

// fit computes the resize layout for src into a width x height box. A zero
// width or height keeps the source size on that axis. Cropping trims the
// source to the destination aspect ratio. Otherwise the source is letterboxed
// when fill is set, or the canvas shrinks to the scaled source.
func fit(src image.Rectangle, width, height int, crop, fill bool) layout {
	srcWidth := float64(src.Dx())
	srcHeight := float64(src.Dy())

	destWidth := float64(width)
	if destWidth == 0 {
		destWidth = srcWidth
	}
	destHeight := float64(height)
	if destHeight == 0 {
		destHeight = srcHeight
	}

	l := layout{
		canvas: image.Rect(0, 0, int(destWidth), int(destHeight)),
		dest:   image.Rect(0, 0, int(destWidth), int(destHeight)),
		src:    src,
	}
	if srcWidth == 0 || srcHeight == 0 {
		return l
	}

	srcAR := srcWidth / srcHeight
	destAR := destWidth / destHeight
	switch {
	case crop && srcAR < destAR:
		dh := int(math.Round((srcHeight - srcWidth/destAR) / 2))
		l.src.Min.Y += dh
		l.src.Max.Y -= dh
	case crop && srcAR > destAR:
		dw := int(math.Round((srcWidth - srcHeight*destAR) / 2))
		l.src.Min.X += dw
		l.src.Max.X -= dw
	case crop:
	case srcAR < destAR:
		dw := destHeight * srcAR
		if !fill {
			l.canvas.Max.X = int(math.Round(dw))
			l.dest.Max.X = l.canvas.Max.X
		} else if l.fill = destWidth > dw; l.fill {
			idw := int(math.Round((destWidth - dw) / 2))
			l.dest.Min.X += idw
			l.dest.Max.X -= idw
		}
	case srcAR > destAR:
		dh := destWidth / srcAR
		if !fill {
			l.canvas.Max.Y = int(math.Round(dh))
			l.dest.Max.Y = l.canvas.Max.Y
		} else if l.fill = destHeight > dh; l.fill {
			idh := int(math.Round((destHeight - dh) / 2))
			l.dest.Min.Y += idh
			l.dest.Max.Y -= idh
		}
	}
	return l
}

func resize(logger *slog.Logger, img image.Image, width, height int, crop bool, fillColor color.Color) image.Image {
	l := fit(img.Bounds(), width, height, crop, fillColor != nil)
	if l.canvas.Eq(img.Bounds()) && l.src.Eq(img.Bounds()) {
		return img
	}

	logger.Debug("resizing", "width", l.dest.Dx(), "height", l.dest.Dy())
	dest := image.NewRGBA(l.canvas)
	if l.fill {
		draw.Draw(dest, l.canvas, image.NewUniform(fillColor), image.Point{}, draw.Src)
	}
	draw.CatmullRom.Scale(dest, l.dest, img, l.src, draw.Over, nil)
	return dest
}
