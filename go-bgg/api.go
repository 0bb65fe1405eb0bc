package bgg

// SearchDetailLimit is how many search hits are expanded into full entries.
const SearchDetailLimit = 30

// TopGameIDs is the curated list of well-known games used for the initial
// catalog load and for refresh.
var TopGameIDs = []int{
	174430, // Gloomhaven
	161936, // Pandemic Legacy: Season 1
	224517, // Brass: Birmingham
	167791, // Terraforming Mars
	187645, // Star Wars: Rebellion
	182028, // Through the Ages
	233078, // Twilight Imperium: Fourth Edition
	169786, // Scythe
	266192, // Wingspan
	312484, // Lost Ruins of Arnak
	342942, // Ark Nova
	291457, // Gloomhaven: Jaws of the Lion
	316554, // Dune: Imperium
	205637, // Arkham Horror: The Card Game
	28720,  // Brass: Lancashire
	164928, // Orléans
	173346, // 7 Wonders Duel
	31260,  // Agricola
	12333,  // Twilight Struggle
	68448,  // 7 Wonders
	230802, // Azul
	126163, // Tzolk'in
	102794, // Caverna
	162886, // Spirit Island
	193738, // Great Western Trail
	180263, // The 7th Continent
	220308, // Gaia Project
	295947, // Cascadia
	366013, // Heat: Pedal to the Metal
	359871, // Earth
}

// API exposes the hot, search and thing operations over a Fetcher.
type API struct {
	fetcher    Fetcher
	normalizer *Normalizer
}

// NewAPI creates an API. A nil normalizer uses the default XML decoder.
func NewAPI(f Fetcher, n *Normalizer) *API {
	if n == nil {
		n = defaultNormalizer
	}
	return &API{fetcher: f, normalizer: n}
}
