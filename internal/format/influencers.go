package format

// Twitter handles to tag on tier 1-2 posts, keyed by ticker, plus generic
// finance accounts for filler.

var stockInfluencers = map[string][]string{
	"TSLA":  {"TESLAcharts", "WholeMarsBlog", "SawyerMerritt"},
	"NVDA":  {"borrowed_ideas", "Deepinsideleak", "FGoria"},
	"AAPL":  {"markgurman", "mingchikuo"},
	"META":  {"alexheath", "MikeIsaac"},
	"AMZN":  {"JasonDelRey", "spaborner"},
	"GOOGL": {"lorenzofb", "alexheath"},
	"MSFT":  {"maborik", "tomwarren"},
	"AMD":   {"IanCutress", "chilobot"},
	"GME":   {"TheRoaringKitty", "GMEdd"},
	"COIN":  {"zaborowsky", "tier10k"},
	"PLTR":  {"Palantir_Bull", "JoshShultz84"},
}

var finTwitAccounts = []string{
	"chaabornn",
	"TrungTPhan",
	"litaborges",
	"BrianFeroldi",
	"QCompounding",
	"10kdiver",
	"borrowed_ideas",
	"ChrisBloomstran",
	"StockMKTNewz",
	"unusual_whales",
	"Fxhedgers",
	"DeItaone",
	"zerohedge",
}

var congressTrackers = []string{
	"unusual_whales",
	"QuiverQuant",
	"PelosiTracker_",
	"CapitolTrades",
}

var hedgeFundTrackers = []string{
	"BurryTracker",
	"WhaleWisdom",
	"HedgeFollow",
}

// tagsForStock picks handles to tag for a ticker: stock-specific first,
// topped up from the general pool. The seed keeps the pick stable per record.
func tagsForStock(ticker string, maxTags int, seed string) []string {
	var tags []string
	if specific, ok := stockInfluencers[ticker]; ok {
		n := 2
		if n > len(specific) {
			n = len(specific)
		}
		tags = append(tags, specific[:n]...)
	}

	offset := int(hashSeed(seed) % uint32(len(finTwitAccounts)))
	for i := 0; len(tags) < maxTags && i < len(finTwitAccounts); i++ {
		candidate := finTwitAccounts[(offset+i)%len(finTwitAccounts)]
		if !containsString(tags, candidate) {
			tags = append(tags, candidate)
		}
	}
	return tags[:min(maxTags, len(tags))]
}

func tagsForCongress(maxTags int) []string {
	if maxTags > len(congressTrackers) {
		maxTags = len(congressTrackers)
	}
	return congressTrackers[:maxTags]
}

func tagsForFund(maxTags int, seed string) []string {
	tags := append([]string{}, hedgeFundTrackers[:2]...)
	offset := int(hashSeed(seed) % uint32(len(finTwitAccounts)))
	for i := 0; len(tags) < maxTags && i < len(finTwitAccounts); i++ {
		candidate := finTwitAccounts[(offset+i)%len(finTwitAccounts)]
		if !containsString(tags, candidate) {
			tags = append(tags, candidate)
		}
	}
	return tags[:min(maxTags, len(tags))]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
