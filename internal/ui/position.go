package ui

// Rect is a control's bounding box in screen cells.
type Rect struct {
	X, Y, W, H int
}

// Size is the terminal viewport in cells.
type Size struct {
	W, H int
}

// Placement is where a dropdown should be drawn.
type Placement struct {
	X, Y  int
	W, H  int
	Above bool // dropdown flipped above the control
}

// PlaceDropdown computes where a dropdown of contentHeight rows goes relative
// to its anchor. The dropdown sits below the anchor at the anchor's width;
// when the space below cannot hold it and there is more room above, it flips
// above. The result is clamped to the viewport.
func PlaceDropdown(anchor Rect, contentHeight int, viewport Size) Placement {
	if contentHeight < 1 {
		contentHeight = 1
	}

	spaceBelow := viewport.H - (anchor.Y + anchor.H)
	if spaceBelow < 0 {
		spaceBelow = 0
	}
	spaceAbove := anchor.Y
	if spaceAbove < 0 {
		spaceAbove = 0
	}

	p := Placement{W: anchor.W}

	if spaceBelow < contentHeight && spaceAbove > spaceBelow {
		p.Above = true
		p.H = contentHeight
		if p.H > spaceAbove {
			p.H = spaceAbove
		}
		p.Y = anchor.Y - p.H
	} else {
		p.H = contentHeight
		if p.H > spaceBelow {
			p.H = spaceBelow
		}
		if p.H < 1 {
			p.H = 1
		}
		p.Y = anchor.Y + anchor.H
	}

	p.X = anchor.X
	if p.X+p.W > viewport.W {
		p.X = viewport.W - p.W
	}
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y+p.H > viewport.H {
		p.H = viewport.H - p.Y
	}
	if p.H < 0 {
		p.H = 0
	}
	return p
}
