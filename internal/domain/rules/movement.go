// Package rules contains the pure calculation logic for game mechanics.
// This package is PURE and must NOT import any infrastructure packages.
package rules

import "math"

// ValidDelta reports whether a proposed per-message movement delta is well
// formed: finite numbers within the allowed magnitude.
func ValidDelta(dx, dy, maxDelta float64) bool {
	if math.IsNaN(dx) || math.IsNaN(dy) || math.IsInf(dx, 0) || math.IsInf(dy, 0) {
		return false
	}
	return math.Abs(dx) <= maxDelta && math.Abs(dy) <= maxDelta
}

// Distance returns the straight-line distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// ClampPosition confines an avatar position to the playable area so the
// avatar square stays fully on the map.
func ClampPosition(x, y, mapWidth, mapHeight, avatarSize float64) (float64, float64) {
	x = math.Max(0, math.Min(mapWidth-avatarSize, x))
	y = math.Max(0, math.Min(mapHeight-avatarSize, y))
	return x, y
}
