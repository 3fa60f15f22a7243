package interp

// RGBA is an 8-bit-per-channel color, alpha always opaque for
// interpreter-resolved colors.
type RGBA struct {
	R, G, B, A uint8
}

// DefaultPalette is the 16-entry default index-to-color mapping.
var DefaultPalette = [16]RGBA{
	0:  {0, 0, 0, 255},       // black
	1:  {0, 0, 255, 255},     // blue
	2:  {0, 255, 0, 255},     // lime
	3:  {0, 255, 255, 255},   // aqua/cyan
	4:  {255, 0, 0, 255},     // red
	5:  {255, 0, 255, 255},   // fuchsia/magenta
	6:  {255, 255, 0, 255},   // yellow
	7:  {255, 255, 255, 255}, // white
	8:  {165, 42, 42, 255},   // brown
	9:  {210, 180, 140, 255}, // tan
	10: {0, 128, 0, 255},     // green
	11: {127, 255, 212, 255}, // aqua (aquamarine)
	12: {250, 128, 114, 255}, // salmon
	13: {128, 0, 128, 255},   // purple
	14: {255, 165, 0, 255},   // orange
	15: {128, 128, 128, 255}, // gray
}

// resolveColor turns a Value into RGBA: a Number indexes the palette, a
// List of 3+ numeric components in [0,255] is coerced directly.
func resolveColor(v Value) (RGBA, error) {
	switch t := v.(type) {
	case Number:
		idx := int(t)
		if idx < 0 || idx >= len(DefaultPalette) {
			return RGBA{}, newError(0, "invalid palette index %d", idx)
		}
		return DefaultPalette[idx], nil

	case List:
		if len(t) < 3 {
			return RGBA{}, newError(0, "expected at least 3 color components")
		}
		r, err := colorComponent(t[0])
		if err != nil {
			return RGBA{}, err
		}
		g, err := colorComponent(t[1])
		if err != nil {
			return RGBA{}, err
		}
		b, err := colorComponent(t[2])
		if err != nil {
			return RGBA{}, err
		}
		return RGBA{R: r, G: g, B: b, A: 255}, nil

	default:
		return RGBA{}, newError(0, "expected a palette index or a color list")
	}
}

func colorComponent(v Value) (uint8, error) {
	n, ok := v.(Number)
	if !ok {
		return 0, newError(0, "color component must be a number")
	}
	f := float64(n)
	if f < 0.0 || f > 255.0 {
		return 0, newError(0, "color component out of bounds")
	}
	return uint8(f), nil
}
