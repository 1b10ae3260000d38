package bridge

import "efidoom/hal"

// Palette is the 256-entry color table indexed frames are drawn through.
type Palette [256]hal.Color

// Set replaces entries from packed r,g,b bytes. A short table updates only
// the entries it covers.
func (p *Palette) Set(rgb []byte) {
	for i := 0; i < len(p) && 3*i+2 < len(rgb); i++ {
		p[i] = hal.Color{R: rgb[3*i], G: rgb[3*i+1], B: rgb[3*i+2]}
	}
}

// NearestIndex returns the entry with the smallest squared RGB distance to
// r,g,b. Ties go to the lower index.
func (p *Palette) NearestIndex(r, g, b uint8) uint8 {
	best := 0
	bestDiff := int(^uint(0) >> 1)
	for i, c := range p {
		dr := int(r) - int(c.R)
		dg := int(g) - int(c.G)
		db := int(b) - int(c.B)
		diff := dr*dr + dg*dg + db*db
		if diff < bestDiff {
			best = i
			bestDiff = diff
		}
		if diff == 0 {
			break
		}
	}
	return uint8(best)
}
