// Package quest defines the daily quest catalog and sampling.
// This package is PURE and must NOT import any infrastructure packages.
package quest

import "math/rand"

// Category groups quests by the action that advances them.
type Category string

const (
	CategoryCollect Category = "collect"
	CategorySell    Category = "sell"
	CategorySteal   Category = "steal"
	CategoryUpgrade Category = "upgrade"
	CategoryMoney   Category = "money"
)

// ID identifies a quest in the catalog.
type ID string

// Quest is a daily objective with a numeric target and a currency reward.
type Quest struct {
	ID       ID       `json:"id"`
	Text     string   `json:"text"`
	Category Category `json:"category"`
	Target   float64  `json:"target"`
	Reward   float64  `json:"reward"`
}

// Catalog is the fixed quest pool players sample from on join.
var Catalog = []Quest{
	{ID: "collect-5", Text: "Collect 5 brainrots", Category: CategoryCollect, Target: 5, Reward: 500},
	{ID: "collect-10", Text: "Collect 10 brainrots", Category: CategoryCollect, Target: 10, Reward: 1500},
	{ID: "sell-3", Text: "Sell 3 brainrots", Category: CategorySell, Target: 3, Reward: 400},
	{ID: "steal-2", Text: "Steal 2 brainrots", Category: CategorySteal, Target: 2, Reward: 750},
	{ID: "upgrade-1", Text: "Buy 1 base upgrade", Category: CategoryUpgrade, Target: 1, Reward: 600},
	{ID: "earn-1000", Text: "Earn $1000 in passive income", Category: CategoryMoney, Target: 1000, Reward: 1000},
}

// DailyCount is how many quests a player carries at once.
const DailyCount = 3

// ByID returns the catalog quest for an ID.
func ByID(id ID) (Quest, bool) {
	for _, q := range Catalog {
		if q.ID == id {
			return q, true
		}
	}
	return Quest{}, false
}

// Sample draws n distinct quests from the catalog without replacement.
func Sample(n int, rng *rand.Rand) []Quest {
	if n > len(Catalog) {
		n = len(Catalog)
	}
	perm := rng.Perm(len(Catalog))
	out := make([]Quest, 0, n)
	for _, i := range perm[:n] {
		out = append(out, Catalog[i])
	}
	return out
}
