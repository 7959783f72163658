// Package catalog defines the static game data: the collectible item table,
// rarity tiers with their spawn weight tables, map geometry, and the upgrade
// ladders. This package is PURE and must NOT import any infrastructure
// packages (network, events, platform).
//
// Item types are addressed by a stable integer ItemID; the table is immutable
// for the process lifetime and never looked up by display name.
package catalog

// Map geometry. The avatar is a 30x30 square; positions are clamped so the
// avatar stays fully on the map.
const (
	MapWidth   = 1200.0
	MapHeight  = 800.0
	AvatarSize = 30.0
)

// Conveyor band. Unclaimed collectibles drift from the top edge straight
// down the belt at BeltSpeed units per physics tick; claimed ones travel
// toward their base at ClaimedSpeed.
const (
	BeltX        = MapWidth/2 - BeltWidth/2
	BeltY        = 0.0
	BeltWidth    = 100.0
	BeltSpeed    = 1.0
	ClaimedSpeed = 2.0
	ItemWidth    = 40.0

	// A claimed collectible within this distance of its base is delivered.
	DeliveryRadius = 5.0
)

// NumBases is the fixed number of base slots.
const NumBases = 6

// Vec2 is a map coordinate.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// basePositions holds the drop-off coordinate of each base, indexed by
// base number minus one.
var basePositions = [NumBases]Vec2{
	{X: 175, Y: 125},
	{X: 1025, Y: 125},
	{X: 175, Y: 400},
	{X: 1025, Y: 400},
	{X: 175, Y: 675},
	{X: 1025, Y: 675},
}

// BasePosition returns the drop-off coordinate for a base number (1..NumBases).
func BasePosition(number int) (Vec2, bool) {
	if number < 1 || number > NumBases {
		return Vec2{}, false
	}
	return basePositions[number-1], true
}

// BaseID renders the wire identifier for a base number, e.g. "base-3".
func BaseID(number int) string {
	return "base-" + string(rune('0'+number))
}

// Tier is a rarity tier. Order matters: index 0 is the lowest tier and the
// fallback when a weighted draw fails to land, and the weight tables below
// are indexed by Tier.
type Tier int

const (
	TierCommon Tier = iota
	TierRare
	TierEpic
	TierLegendary
	TierMythic
	TierGod
	TierOG
	TierSecret
	TierGalactic
	TierCosmic
	TierTranscendental
	TierParadoxal
	TierEternal
	TierDivine
	TierMystic
	TierLegendaryNew
	TierImmortal
	TierAbsolute
	TierCosmologic
	TierFinal

	NumTiers int = iota
)

var tierNames = [NumTiers]string{
	"common", "rare", "epic", "legendary", "mythic", "god", "og", "secret",
	"galactic", "cosmic", "transcendental", "paradoxal", "eternal", "divine",
	"mystic", "legendary-new", "immortal", "absolute", "cosmologic", "final",
}

func (t Tier) String() string {
	if t < 0 || int(t) >= NumTiers {
		return "unknown"
	}
	return tierNames[t]
}

// NormalWeights is the default spawn probability mass per tier.
var NormalWeights = [NumTiers]float64{
	0.50, 0.25, 0.15, 0.05, 0.02, 0.015, 0.01, 0.005,
	0.003, 0.002, 0.001, 0.0005, 0.0002, 0.0001,
	0.00005, 0.00001, 0.000005, 0.000001, 0.0000005, 0.0000001,
}

// EventWeights is the boosted table used while an admin rarity event is
// active; mass shifts toward the rare tiers.
var EventWeights = [NumTiers]float64{
	0.20, 0.20, 0.15, 0.10, 0.08, 0.07, 0.06, 0.05,
	0.04, 0.03, 0.01, 0.005, 0.002, 0.001,
	0.0005, 0.0001, 0.00005, 0.00001, 0.000005, 0.000001,
}

// ItemID is the stable identifier of an item type: its index in Items.
type ItemID int

// ItemType describes one collectible kind. Rarity and Class are the wire
// strings clients render; Tier drives spawning.
type ItemType struct {
	ID             ItemID
	Name           string
	Tier           Tier
	Rarity         string
	Class          string
	Price          float64
	SellPrice      float64
	GenerationRate float64
}

// Items is the immutable item table, indexed by ItemID.
var Items = []ItemType{
	{0, "Skibidi Toilet", TierCommon, "Comum", "common", 10, 5, 0.1},
	{1, "Sigma Face", TierCommon, "Comum", "common", 12, 6, 0.12},
	{2, "Cbum", TierRare, "Raro", "rare", 50, 25, 0.5},
	{3, "Baby Gronk", TierRare, "Raro", "rare", 60, 30, 0.6},
	{4, "NPC Streamer", TierEpic, "Épico", "epic", 200, 100, 2},
	{5, "The Weeknd", TierEpic, "Épico", "epic", 250, 125, 2.5},
	{6, "Bebê Dançando", TierLegendary, "Lendário", "legendary", 1000, 500, 10},
	{7, "Gato Cansado", TierLegendary, "Lendário", "legendary", 1200, 600, 12},
	{8, "Morte ao Vivo", TierMythic, "Mítico", "mythic", 2500, 1250, 25},
	{9, "Brain Rot God", TierGod, "Deus", "god", 5000, 2500, 50},
	{10, "OG Meme", TierOG, "OG", "og", 8000, 4000, 80},
	{11, "Brainrot Secreto", TierSecret, "Secreto", "secret", 15000, 7500, 150},
	{12, "Animação 3D do Minecraft", TierGalactic, "Galactic", "galactic", 25000, 12500, 250},
	{13, "Sopa de Letrinhas", TierGalactic, "Galactic", "galactic", 30000, 15000, 300},
	{14, "GigaChad", TierCosmic, "Cosmic", "cosmic", 50000, 25000, 500},
	{15, "Meme do Mago", TierCosmic, "Cosmic", "cosmic", 60000, 30000, 600},
	{16, "Dancinha do Tik Tok", TierTranscendental, "Transcendental", "transcendental", 150000, 75000, 1500},
	{17, "Morte do Jogo do Roblox", TierTranscendental, "Transcendental", "transcendental", 180000, 90000, 1800},
	{18, "Portal para Outra Dimensão", TierParadoxal, "Paradoxal", "paradoxal", 500000, 250000, 5000},
	{19, "O Começo de Tudo", TierParadoxal, "Paradoxal", "paradoxal", 750000, 375000, 7500},
	{20, "O Fim da Jornada", TierEternal, "Eterno", "eternal", 1500000, 750000, 15000},
	{21, "Eterno Retorno", TierEternal, "Eterno", "eternal", 2000000, 1000000, 20000},
	{22, "O Vazio do Universo", TierDivine, "Divino", "divine", 5000000, 2500000, 50000},
	{23, "A Essência da Existência", TierDivine, "Divino", "divine", 10000000, 5000000, 100000},
	{24, "O Guardião do Tempo", TierMystic, "Místico", "mystic", 25000000, 12500000, 250000},
	{25, "O Código da Realidade", TierMystic, "Místico", "mystic", 50000000, 25000000, 500000},
	{26, "A Lenda de Outro Mundo", TierLegendaryNew, "Lendário", "legendary-new", 100000000, 50000000, 1000000},
	{27, "O Deus Supremo", TierLegendaryNew, "Lendário", "legendary-new", 200000000, 100000000, 2000000},
	{28, "Fragmento do Imortal", TierImmortal, "Imortal", "immortal", 500000000, 250000000, 5000000},
	{29, "O Sussurro do Caos", TierImmortal, "Imortal", "immortal", 1000000000, 500000000, 10000000},
	{30, "A Ascensão Absoluta", TierAbsolute, "Absoluto", "absolute", 5000000000, 2500000000, 50000000},
	{31, "O Fim de Tudo", TierAbsolute, "Absoluto", "absolute", 10000000000, 5000000000, 100000000},
	{32, "Chuva de Metade", TierCosmologic, "Cosmológico", "cosmologic", 500000000000, 250000000000, 500000000},
	{33, "A Criança do Apocalipse", TierCosmologic, "Cosmológico", "cosmologic", 1000000000000, 500000000000, 1000000000},
	{34, "O Coração do Universo", TierFinal, "Final", "final", 50000000000000, 25000000000000, 50000000000},
	{35, "O Fim da História", TierFinal, "Final", "final", 100000000000000, 50000000000000, 100000000000},
	{36, "Dança do Fanum Tax", TierCommon, "Comum", "common", 15, 7, 0.15},
	{37, "Rizzler Supremo", TierRare, "Raro", "rare", 70, 35, 0.7},
	{38, "Ohio Mode Activated", TierEpic, "Épico", "epic", 300, 150, 3},
	{39, "Skibidi Rizz", TierLegendary, "Lendário", "legendary", 1500, 750, 15},
	{40, "Brainrot Overload", TierMythic, "Mítico", "mythic", 3000, 1500, 30},
	{41, "Sigma Male Grindset", TierGod, "Deus", "god", 6000, 3000, 60},
	{42, "Fanum Tax Collector", TierOG, "OG", "og", 10000, 5000, 100},
	{43, "Rizz God Emperor", TierGalactic, "Galactic", "galactic", 35000, 17500, 350},
	{44, "Ohio Sigma King", TierCosmic, "Cosmic", "cosmic", 70000, 35000, 700},
	{45, "Brainrot Apocalypse", TierTranscendental, "Transcendental", "transcendental", 200000, 100000, 2000},
	{46, "Infinite Rizz Loop", TierParadoxal, "Paradoxal", "paradoxal", 1000000, 500000, 10000},
	{47, "Sigma Rule #1", TierEternal, "Eterno", "eternal", 3000000, 1500000, 30000},
	{48, "Fanum Tax Empire", TierDivine, "Divino", "divine", 15000000, 7500000, 150000},
	{49, "Rizz Dimension", TierMystic, "Místico", "mystic", 30000000, 15000000, 300000},
	{50, "Ohio Overlord", TierImmortal, "Imortal", "immortal", 1500000000, 750000000, 15000000},
	{51, "Brainrot Singularity", TierAbsolute, "Absoluto", "absolute", 10000000000000, 5000000000000, 100000000000},
}

// itemsByTier is built once at init; every tier is guaranteed non-empty so a
// weighted draw always resolves to a concrete item type.
var itemsByTier [NumTiers][]ItemID

func init() {
	for _, it := range Items {
		itemsByTier[it.Tier] = append(itemsByTier[it.Tier], it.ID)
	}
	for t, ids := range itemsByTier {
		if len(ids) == 0 {
			panic("catalog: tier " + Tier(t).String() + " has no item types")
		}
	}
}

// Item returns the item type for a stable ID.
func Item(id ItemID) (ItemType, bool) {
	if id < 0 || int(id) >= len(Items) {
		return ItemType{}, false
	}
	return Items[id], true
}

// ItemsByTier returns the item IDs that may spawn for a tier.
func ItemsByTier(t Tier) []ItemID {
	if t < 0 || int(t) >= NumTiers {
		return nil
	}
	return itemsByTier[t]
}

// UpgradeLevel is one rung of an upgrade ladder: the effect value at that
// level and the cost to buy into it from the level below.
type UpgradeLevel struct {
	Value float64
	Cost  float64
}

// CapacityLadder maps capacity upgrade level to inventory slots. Level 0 is
// the free baseline.
var CapacityLadder = []UpgradeLevel{
	{Value: 6, Cost: 0},
	{Value: 8, Cost: 500},
	{Value: 10, Cost: 2000},
	{Value: 12, Cost: 10000},
	{Value: 15, Cost: 50000},
}

// GenerationLadder maps generation upgrade level to the passive income
// multiplier.
var GenerationLadder = []UpgradeLevel{
	{Value: 1, Cost: 0},
	{Value: 1.25, Cost: 1000},
	{Value: 1.5, Cost: 5000},
	{Value: 2, Cost: 25000},
	{Value: 3, Cost: 100000},
}
