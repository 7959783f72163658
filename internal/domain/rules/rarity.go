package rules

// PickTier resolves a weighted random draw over a tier weight table.
// roll is expected in [0,1). If the cumulative weights never reach the roll
// (the table may not sum to exactly 1 under floating rounding), the draw
// falls back to the lowest tier, index 0.
func PickTier(weights []float64, roll float64) int {
	cumulative := 0.0
	for tier, w := range weights {
		cumulative += w
		if roll <= cumulative {
			return tier
		}
	}
	return 0
}
