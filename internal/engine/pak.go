package engine

import (
	"github.com/innermond/pak"
)

// pakPacker drives one of the pak heuristics through the Packer interface.
type pakPacker struct {
	insert func(*pak.Box) bool
}

func newPakPacker(strategy func() *pak.Base) packerFactory {
	return func(length, width float64) Packer {
		bin := pak.NewBin(length, width, strategy())
		return &pakPacker{insert: bin.Insert}
	}
}

// Insert hands a fresh box to the bin. The box is private to this call, so
// its position maps back to exactly one cargo item.
func (pp *pakPacker) Insert(length, width float64) (float64, float64, bool, bool) {
	box := &pak.Box{W: length, H: width, CanRotate: true}
	if !pp.insert(box) {
		return 0, 0, false, false
	}
	rotated := box.Rotated
	if length != width && near(box.W, width) && near(box.H, length) {
		rotated = true
	}
	return box.X, box.Y, rotated, true
}

// near compares box sides, which pak may swap on rotation.
func near(a, b float64) bool {
	return a > b-eps && a < b+eps
}

func pakBestAreaFit() *pak.Base      { return &pak.Base{Scorer: &pak.BestAreaFit{}} }
func pakBestShortSide() *pak.Base    { return &pak.Base{Scorer: &pak.BestShortSide{}} }
func pakBestLongSide() *pak.Base     { return &pak.Base{Scorer: &pak.BestLongSide{}} }
func pakBottomLeft() *pak.Base       { return &pak.Base{Scorer: &pak.BottomLeft{}} }
func pakBestSimilarRatio() *pak.Base { return &pak.Base{Scorer: &pak.BestSimilarRatio{}} }
