package engine

// eps is the fit tolerance in meters.
const eps = 1e-6

// Packer places rectangles one at a time into a single bin. Insert returns
// the origin of the placed footprint and whether it was turned 90° (length
// along the bin's width). A packer never moves earlier placements.
type Packer interface {
	Insert(length, width float64) (x, y float64, rotated, ok bool)
}

// guillotinePacker keeps a list of maximal free rectangles and splits them
// around every placement.
type guillotinePacker struct {
	freeRects []rect
}

type rect struct {
	x, y, w, h float64
}

func newGuillotinePacker(length, width float64) Packer {
	return &guillotinePacker{
		freeRects: []rect{{0, 0, length, width}},
	}
}

// Insert places the footprint at the free position nearest the bin origin,
// ordered by x then y. Both orientations are considered; the normal one wins
// a tie.
func (gp *guillotinePacker) Insert(length, width float64) (float64, float64, bool, bool) {
	normal, okN := gp.firstFit(length, width)
	rotated, okR := rect{}, false
	if length != width {
		rotated, okR = gp.firstFit(width, length)
	}

	var chosen rect
	var turned bool
	switch {
	case okN && okR:
		if before(rotated, normal) {
			chosen, turned = rotated, true
		} else {
			chosen = normal
		}
	case okN:
		chosen = normal
	case okR:
		chosen, turned = rotated, true
	default:
		return 0, 0, false, false
	}

	gp.splitAroundPlacement(chosen)
	return chosen.x, chosen.y, turned, true
}

// firstFit returns the placement rectangle at the lowest (x, y) free corner
// that can hold w x h.
func (gp *guillotinePacker) firstFit(w, h float64) (rect, bool) {
	best := rect{}
	found := false
	for _, r := range gp.freeRects {
		if w > r.w+eps || h > r.h+eps {
			continue
		}
		cand := rect{x: r.x, y: r.y, w: w, h: h}
		if !found || before(cand, best) {
			best = cand
			found = true
		}
	}
	return best, found
}

// before orders positions front-to-back, then side-to-side.
func before(a, b rect) bool {
	if a.x < b.x-eps {
		return true
	}
	if a.x > b.x+eps {
		return false
	}
	return a.y < b.y-eps
}

// splitAroundPlacement removes all free rects that overlap with the placed rect
// and generates maximal sub-rects from each overlap. Then prunes contained rects.
func (gp *guillotinePacker) splitAroundPlacement(placed rect) {
	var newRects []rect

	for _, r := range gp.freeRects {
		if !rectsOverlap(r, placed) {
			newRects = append(newRects, r)
			continue
		}

		// Front strip
		if placed.x > r.x+eps {
			newRects = append(newRects, rect{
				x: r.x, y: r.y,
				w: placed.x - r.x, h: r.h,
			})
		}
		// Rear strip
		if placed.x+placed.w < r.x+r.w-eps {
			newRects = append(newRects, rect{
				x: placed.x + placed.w, y: r.y,
				w: (r.x + r.w) - (placed.x + placed.w), h: r.h,
			})
		}
		// Near-side strip
		if placed.y > r.y+eps {
			newRects = append(newRects, rect{
				x: r.x, y: r.y,
				w: r.w, h: placed.y - r.y,
			})
		}
		// Far-side strip
		if placed.y+placed.h < r.y+r.h-eps {
			newRects = append(newRects, rect{
				x: r.x, y: placed.y + placed.h,
				w: r.w, h: (r.y + r.h) - (placed.y + placed.h),
			})
		}
	}

	gp.freeRects = pruneContained(newRects)
}

// rectsOverlap returns true if two rectangles overlap (not just touch).
func rectsOverlap(a, b rect) bool {
	return a.x < b.x+b.w-eps && a.x+a.w > b.x+eps &&
		a.y < b.y+b.h-eps && a.y+a.h > b.y+eps
}

// pruneContained removes any rect that is fully contained within another.
// Of two identical rects the first is kept.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j || !containsRect(b, a) {
				continue
			}
			if containsRect(a, b) && j > i {
				// duplicates: keep the earlier one
				continue
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

// containsRect returns true if outer fully contains inner.
func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x+eps && outer.y <= inner.y+eps &&
		outer.x+outer.w >= inner.x+inner.w-eps &&
		outer.y+outer.h >= inner.y+inner.h-eps
}
