package assets

import (
	"image"
	"image/draw"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// iconSVG is the application icon: a rounded terminal glyph with a
// prompt caret, in the palette's default scheme colors. Kept inline
// rather than an embedded asset file since the icon is the only binary
// resource this module ships.
const iconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
  <rect x="2" y="2" width="60" height="60" rx="12" fill="#0d101a"/>
  <rect x="2" y="2" width="60" height="60" rx="12" fill="none" stroke="#a2e0c7" stroke-width="2"/>
  <path d="M14 22 L26 32 L14 42" fill="none" stroke="#a2e0c7" stroke-width="4" stroke-linecap="round" stroke-linejoin="round"/>
  <line x1="32" y1="42" x2="50" y2="42" stroke="#e8edf7" stroke-width="4" stroke-linecap="round"/>
</svg>`

// RenderIconSizes renders the embedded SVG icon at multiple sizes
// Returns a slice of images suitable for GLFW SetIcon
func RenderIconSizes() []image.Image {
	sizes := []int{16, 32, 48, 64, 128, 256}
	var icons []image.Image

	for _, size := range sizes {
		if img := renderSVGToSize(iconSVG, size); img != nil {
			icons = append(icons, img)
		}
	}

	return icons
}

// RenderIcon renders the embedded SVG icon at the specified size
func RenderIcon(size int) image.Image {
	return renderSVGToSize(iconSVG, size)
}

// renderSVGToSize renders an SVG string to an RGBA image of the specified size
func renderSVGToSize(svgData string, size int) image.Image {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svgData))
	if err != nil {
		return nil
	}

	// Set the target size
	icon.SetTarget(0, 0, float64(size), float64(size))

	// Create the destination image
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))

	// Create a scanner/rasterizer
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	rasterizer := rasterx.NewDasher(size, size, scanner)

	// Render the icon
	icon.Draw(rasterizer, 1.0)

	return rgba
}

// LoadMultiSizeIcons returns the embedded SVG rendered at multiple sizes
func LoadMultiSizeIcons() []image.Image {
	return RenderIconSizes()
}

// LoadIcon returns the embedded SVG rendered at 64x64 (standard icon size)
func LoadIcon() (image.Image, error) {
	return RenderIcon(64), nil
}

// CopyImage creates a copy of an image (utility function)
func CopyImage(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
