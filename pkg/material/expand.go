package material

// Slot is the expanded texture assignment of one voxel type, in the order
// back, front, top, bottom, left, right. Empty entries mean "no texture".
type Slot [NumFaces]string

// Expand converts a spec into its six-face slot. It is pure and deterministic.
//
//	1 name:  all faces
//	2 names: [sides, topBottom]
//	3 names: [top, bottom, sides]
//	4 names: [top, bottom, frontBack, leftRight]
//	6 names: canonical order, returned unchanged
func Expand(s Spec) (Slot, error) {
	switch s.kind {
	case KindNone:
		return Slot{}, nil
	case KindFaces:
		f := s.faces
		return Slot{f.Back, f.Front, f.Top, f.Bottom, f.Left, f.Right}, nil
	case KindName, KindTuple:
		return expandTuple(s)
	default:
		return Slot{}, &SpecError{Kind: s.kind, Reason: "unknown spec kind"}
	}
}

func expandTuple(s Spec) (Slot, error) {
	n := s.names
	switch len(n) {
	case 1:
		return Slot{n[0], n[0], n[0], n[0], n[0], n[0]}, nil
	case 2:
		sides, topBottom := n[0], n[1]
		return Slot{sides, sides, topBottom, topBottom, sides, sides}, nil
	case 3:
		top, bottom, sides := n[0], n[1], n[2]
		return Slot{sides, sides, top, bottom, sides, sides}, nil
	case 4:
		top, bottom, frontBack, leftRight := n[0], n[1], n[2], n[3]
		return Slot{frontBack, frontBack, top, bottom, leftRight, leftRight}, nil
	case NumFaces:
		var slot Slot
		copy(slot[:], n)
		return slot, nil
	case 0:
		return Slot{}, &SpecError{Kind: s.kind, Len: 0, Reason: "empty tuple"}
	default:
		return Slot{}, &SpecError{Kind: s.kind, Len: len(n), Reason: "tuple length must be 1, 2, 3, 4 or 6"}
	}
}

// MustExpand is like Expand but panics on a malformed spec.
func MustExpand(s Spec) Slot {
	slot, err := Expand(s)
	if err != nil {
		panic(err)
	}
	return slot
}

// Spec converts the slot back into a six-tuple spec.
func (s Slot) Spec() Spec {
	return Tuple(s[:]...)
}

// Names returns the distinct raster names of the slot in face order,
// skipping empty entries and flat colours.
func (s Slot) Names() []string {
	var out []string
	seen := make(map[string]bool, NumFaces)
	for _, name := range s {
		if name == "" || IsFlatColor(name) || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Contains reports whether any face of the slot uses name.
func (s Slot) Contains(name string) bool {
	for _, n := range s {
		if n == name {
			return true
		}
	}
	return false
}
