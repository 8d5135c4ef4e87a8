package uv

import "github.com/Faultbox/voxeltex/pkg/math"

// Face slots in canonical material order.
const (
	SlotBack = iota
	SlotFront
	SlotTop
	SlotBottom
	SlotLeft
	SlotRight
)

// SlotForNormal picks the material slot for a face from its normal.
// Axis-aligned normals are matched in the order +z, +y, -y, -x, +x;
// anything else (including -z) falls back to the back slot.
func SlotForNormal(n math.Vec3) int {
	switch {
	case n.Z == 1:
		return SlotFront
	case n.Y == 1:
		return SlotTop
	case n.Y == -1:
		return SlotBottom
	case n.X == -1:
		return SlotLeft
	case n.X == 1:
		return SlotRight
	default:
		return SlotBack
	}
}
