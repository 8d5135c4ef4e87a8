// Package material expands voxel material specifications into the canonical
// six-face slot order used by the texture atlas.
//
// A specification is one of: nothing, a single raster name, a tuple of 1, 2,
// 3, 4 or 6 names, or a record naming each face. Names beginning with '#'
// are flat colours and are never loaded into the atlas.
//
// A 2-tuple is read as [sides, topBottom]. Manifests that list top/bottom
// first must swap the pair.
package material

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies which shape a Spec holds.
type Kind uint8

const (
	KindNone Kind = iota
	KindName
	KindTuple
	KindFaces
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindName:
		return "name"
	case KindTuple:
		return "tuple"
	case KindFaces:
		return "faces"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Face indices of a Slot.
const (
	FaceBack = iota
	FaceFront
	FaceTop
	FaceBottom
	FaceLeft
	FaceRight
	NumFaces
)

// FlatColorPrefix marks a slot entry as a literal colour instead of a raster name.
const FlatColorPrefix = "#"

// ErrInvalidSpec is wrapped by every SpecError.
var ErrInvalidSpec = errors.New("material: invalid spec")

// SpecError describes a specification that cannot be expanded.
type SpecError struct {
	Kind   Kind
	Len    int
	Reason string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("material: invalid %s spec (len %d): %s", e.Kind, e.Len, e.Reason)
}

func (e *SpecError) Unwrap() error { return ErrInvalidSpec }

// FaceSet names the texture of each face explicitly.
type FaceSet struct {
	Back   string `yaml:"back" json:"back"`
	Front  string `yaml:"front" json:"front"`
	Top    string `yaml:"top" json:"top"`
	Bottom string `yaml:"bottom" json:"bottom"`
	Left   string `yaml:"left" json:"left"`
	Right  string `yaml:"right" json:"right"`
}

// Spec is a tagged material specification. The zero value is None.
type Spec struct {
	kind  Kind
	names []string
	faces FaceSet
}

// None returns a spec whose six slots are all empty.
func None() Spec { return Spec{kind: KindNone} }

// Name returns a spec broadcasting one raster name to all six faces.
func Name(name string) Spec { return Spec{kind: KindName, names: []string{name}} }

// Tuple returns a positional spec. Valid lengths are 1, 2, 3, 4 and 6.
func Tuple(names ...string) Spec {
	return Spec{kind: KindTuple, names: append([]string(nil), names...)}
}

// Faces returns a spec naming each face.
func Faces(f FaceSet) Spec { return Spec{kind: KindFaces, faces: f} }

// Kind returns the shape of the spec.
func (s Spec) Kind() Kind { return s.kind }

// Len returns the number of positional names (1 for a bare name, 6 for a face record).
func (s Spec) Len() int {
	switch s.kind {
	case KindName, KindTuple:
		return len(s.names)
	case KindFaces:
		return NumFaces
	default:
		return 0
	}
}

// String renders the spec for logs.
func (s Spec) String() string {
	switch s.kind {
	case KindName:
		return s.names[0]
	case KindTuple:
		return "[" + strings.Join(s.names, ",") + "]"
	case KindFaces:
		f := s.faces
		return fmt.Sprintf("{back:%s front:%s top:%s bottom:%s left:%s right:%s}",
			f.Back, f.Front, f.Top, f.Bottom, f.Left, f.Right)
	default:
		return "null"
	}
}

// Validate reports whether the spec has an expandable shape.
func (s Spec) Validate() error {
	_, err := Expand(s)
	return err
}

// IsFlatColor reports whether a slot entry is a literal colour such as "#ff0000".
func IsFlatColor(name string) bool {
	return strings.HasPrefix(name, FlatColorPrefix)
}
