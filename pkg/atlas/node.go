package atlas

import "image"

// node is one cell of the guillotine tree. A leaf is either free or filled;
// an interior node owns exactly two children covering its rectangle.
type node struct {
	rect        image.Rectangle
	left, right *node
	filled      bool
}

// insert finds a free leaf for a w×h block, splitting leaves along the
// axis with the larger leftover. It returns the rectangle reserved.
func (n *node) insert(w, h int) (image.Rectangle, bool) {
	if n.left != nil {
		if r, ok := n.left.insert(w, h); ok {
			return r, true
		}
		return n.right.insert(w, h)
	}
	if n.filled {
		return image.Rectangle{}, false
	}
	nw, nh := n.rect.Dx(), n.rect.Dy()
	if w > nw || h > nh {
		return image.Rectangle{}, false
	}
	if w == nw && h == nh {
		n.filled = true
		return n.rect, true
	}

	min := n.rect.Min
	if nw-w > nh-h {
		n.left = &node{rect: image.Rect(min.X, min.Y, min.X+w, n.rect.Max.Y)}
		n.right = &node{rect: image.Rect(min.X+w, min.Y, n.rect.Max.X, n.rect.Max.Y)}
	} else {
		n.left = &node{rect: image.Rect(min.X, min.Y, n.rect.Max.X, min.Y+h)}
		n.right = &node{rect: image.Rect(min.X, min.Y+h, n.rect.Max.X, n.rect.Max.Y)}
	}
	return n.left.insert(w, h)
}

// canFit reports whether insert(w, h) would succeed, without mutating.
func (n *node) canFit(w, h int) bool {
	if n.left != nil {
		return n.left.canFit(w, h) || n.right.canFit(w, h)
	}
	return !n.filled && w <= n.rect.Dx() && h <= n.rect.Dy()
}

// grow returns a root covering (0,0)-(w,h) that keeps n as its top-left
// subtree and adds free leaves for the new right and bottom strips.
func grow(n *node, w, h int) *node {
	old := n.rect
	if old.Dx() == w && old.Dy() == h {
		return n
	}
	top := &node{
		rect:  image.Rect(0, 0, w, old.Dy()),
		left:  n,
		right: &node{rect: image.Rect(old.Dx(), 0, w, old.Dy())},
	}
	return &node{
		rect:  image.Rect(0, 0, w, h),
		left:  top,
		right: &node{rect: image.Rect(0, old.Dy(), w, h)},
	}
}
