package render

// instFlags selects which fragment path an instance takes.
type instFlags uint32

const (
	flagGlyph instFlags = 1 << iota // textured glyph sample instead of a flat rect
	flagApplyContrastLift
)

// Instance is the packed per-instance record both the bg and fg pipelines
// consume: position/size in pixels, a UV rect (zero for a flat-color rect),
// fg/bg color, and a flags word. floats() packs it into the instanced
// vertex buffer's layout.
type Instance struct {
	X, Y, W, H         float32
	UVX, UVY, UVW, UVH float32
	FgR, FgG, FgB, FgA float32
	BgR, BgG, BgB, BgA float32
	Flags              instFlags
}

// instanceFloats is how many float32 slots one packed Instance occupies
// (the Flags word is bit-cast to a float32 so the whole record is one
// uniform vertex-attribute stride).
const instanceFloats = 17

func (in Instance) floats() [instanceFloats]float32 {
	return [instanceFloats]float32{
		in.X, in.Y, in.W, in.H,
		in.UVX, in.UVY, in.UVW, in.UVH,
		in.FgR, in.FgG, in.FgB, in.FgA,
		in.BgR, in.BgG, in.BgB, in.BgA,
		float32(in.Flags),
	}
}

// packInstances flattens a slice of Instances into the buffer uploaded via
// glBufferSubData.
func packInstances(instances []Instance) []float32 {
	out := make([]float32, 0, len(instances)*instanceFloats)
	for _, in := range instances {
		f := in.floats()
		out = append(out, f[:]...)
	}
	return out
}

// rectInstance builds a flat-color background-pipeline instance covering
// the pixel rect (x,y,w,h).
func rectInstance(x, y, w, h float32, fg [4]float32) Instance {
	return Instance{X: x, Y: y, W: w, H: h, FgR: fg[0], FgG: fg[1], FgB: fg[2], FgA: fg[3]}
}

// glyphInstance builds a foreground-pipeline instance sampling the atlas at
// uv, tinted fg, contrast-corrected against bg.
func glyphInstance(x, y, w, h float32, uv [4]float32, fg, bg [4]float32) Instance {
	return Instance{
		X: x, Y: y, W: w, H: h,
		UVX: uv[0], UVY: uv[1], UVW: uv[2], UVH: uv[3],
		FgR: fg[0], FgG: fg[1], FgB: fg[2], FgA: fg[3],
		BgR: bg[0], BgG: bg[1], BgB: bg[2], BgA: bg[3],
		Flags: flagGlyph | flagApplyContrastLift,
	}
}
