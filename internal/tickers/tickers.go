// Package tickers holds the curated reference data the analyzers and scorers
// key on: recognizable ticker sets, company-name aliases, high-profile
// politicians and famous fund managers. All of it is immutable after
// construction so the core stays safe for concurrent use and tests can
// substitute their own tables.
package tickers

import "strings"

// Reference bundles the lookup tables. Build one with Default (production
// tables) or construct a custom one in tests.
type Reference struct {
	Magnificent7 map[string]bool
	FAANG        map[string]bool
	MemeStocks   map[string]bool
	SP500        map[string]bool

	// CompanyAliases maps normalized company names to ticker symbols, for
	// filings that omit the trading symbol.
	CompanyAliases map[string]string

	// HighProfilePoliticians maps a lowercase surname fragment to the full
	// display name.
	HighProfilePoliticians map[string]string

	// FamousFunds maps an uppercase fund-name fragment to its manager info.
	FamousFunds map[string]Fund
}

// Fund identifies a tracked institutional manager.
type Fund struct {
	Manager string
	CIK     string
}

func set(symbols ...string) map[string]bool {
	m := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		m[s] = true
	}
	return m
}

// Default returns the production reference tables.
func Default() *Reference {
	return &Reference{
		Magnificent7: set("AAPL", "MSFT", "GOOGL", "GOOG", "AMZN", "NVDA", "META", "TSLA"),
		FAANG:        set("META", "AAPL", "AMZN", "NFLX", "GOOGL", "GOOG"),
		MemeStocks: set(
			"TSLA", "GME", "AMC", "BBBY", "PLTR", "NIO", "RIVN", "LCID",
			"SOFI", "HOOD", "COIN", "MARA", "RIOT", "NVDA", "AMD",
		),
		SP500: set(
			"AAPL", "MSFT", "AMZN", "NVDA", "GOOGL", "GOOG", "META", "TSLA", "BRK.B",
			"UNH", "JNJ", "JPM", "V", "PG", "XOM", "MA", "HD", "CVX", "MRK", "ABBV",
			"LLY", "PEP", "KO", "COST", "AVGO", "WMT", "MCD", "CSCO", "ACN", "TMO",
			"ABT", "DHR", "NEE", "VZ", "ADBE", "NKE", "PM", "TXN", "WFC", "CRM",
			"BMY", "UPS", "MS", "RTX", "HON", "QCOM", "UNP", "LOW", "ORCL", "IBM",
			"INTC", "SPGI", "CAT", "GE", "AMGN", "INTU", "BA", "DE", "AXP", "ISRG",
			"MDLZ", "SYK", "ADI", "REGN", "BKNG", "BLK", "GILD", "VRTX", "C", "SBUX",
			"MMC", "ADP", "TJX", "PLD", "CI", "CB", "SCHW", "LMT", "SO", "MO",
			"DUK", "EOG", "ZTS", "TMUS", "BDX", "CL", "NOC", "CSX", "ICE", "SHW",
			"CME", "ITW", "WM", "PNC", "USB", "TGT", "EQIX", "FDX", "EL", "GD",
			"ATVI", "EMR", "MU", "LRCX", "AMAT", "KLAC", "SNPS", "CDNS", "MRVL",
			"PANW", "CRWD", "DDOG", "ZS", "SNOW", "NET", "ABNB", "UBER", "LYFT",
		),
		CompanyAliases: map[string]string{
			"APPLE INC":               "AAPL",
			"MICROSOFT CORP":          "MSFT",
			"MICROSOFT CORPORATION":   "MSFT",
			"AMAZON COM INC":          "AMZN",
			"AMAZON.COM INC":          "AMZN",
			"TESLA INC":               "TSLA",
			"NVIDIA CORP":             "NVDA",
			"NVIDIA CORPORATION":      "NVDA",
			"META PLATFORMS":          "META",
			"ALPHABET INC":            "GOOGL",
			"NETFLIX INC":             "NFLX",
			"INTEL CORP":              "INTC",
			"INTEL CORPORATION":       "INTC",
			"ADVANCED MICRO DEVICES":  "AMD",
			"PALANTIR TECHNOLOGIES":   "PLTR",
			"COINBASE GLOBAL":         "COIN",
			"GAMESTOP CORP":           "GME",
			"AMC ENTERTAINMENT":       "AMC",
			"RIVIAN AUTOMOTIVE":       "RIVN",
			"LUCID GROUP":             "LCID",
			"SNOWFLAKE INC":           "SNOW",
			"CROWDSTRIKE HOLDINGS":    "CRWD",
			"DATADOG INC":             "DDOG",
			"UBER TECHNOLOGIES":       "UBER",
			"AIRBNB INC":              "ABNB",
			"SALESFORCE INC":          "CRM",
			"JPMORGAN CHASE":          "JPM",
			"BANK OF AMERICA":         "BAC",
			"WELLS FARGO":             "WFC",
			"GOLDMAN SACHS":           "GS",
			"MORGAN STANLEY":          "MS",
		},
		HighProfilePoliticians: map[string]string{
			"pelosi":        "Nancy Pelosi",
			"mcconnell":     "Mitch McConnell",
			"schumer":       "Chuck Schumer",
			"ocasio-cortez": "Alexandria Ocasio-Cortez",
			"warren":        "Elizabeth Warren",
			"cruz":          "Ted Cruz",
			"tuberville":    "Tommy Tuberville",
			"kelly":         "Mark Kelly",
			"ossoff":        "Jon Ossoff",
		},
		FamousFunds: map[string]Fund{
			"BERKSHIRE HATHAWAY":       {Manager: "Warren Buffett", CIK: "0001067983"},
			"SCION ASSET MANAGEMENT":   {Manager: "Michael Burry", CIK: "0001649339"},
			"PERSHING SQUARE":          {Manager: "Bill Ackman", CIK: "0001336528"},
			"BRIDGEWATER ASSOCIATES":   {Manager: "Ray Dalio", CIK: "0001350694"},
			"RENAISSANCE TECHNOLOGIES": {Manager: "Jim Simons", CIK: "0001037389"},
			"CITADEL ADVISORS":         {Manager: "Ken Griffin", CIK: "0001423053"},
			"TIGER GLOBAL":             {Manager: "Chase Coleman", CIK: "0001167483"},
			"APPALOOSA":                {Manager: "David Tepper", CIK: "0001006438"},
			"GREENLIGHT CAPITAL":       {Manager: "David Einhorn", CIK: "0001079114"},
			"THIRD POINT":              {Manager: "Dan Loeb", CIK: "0001040273"},
			"BAUPOST GROUP":            {Manager: "Seth Klarman", CIK: "0001061768"},
			"LONE PINE CAPITAL":        {Manager: "Stephen Mandel", CIK: "0001061165"},
			"COATUE MANAGEMENT":        {Manager: "Philippe Laffont", CIK: "0001535392"},
			"DRUCKENMILLER":            {Manager: "Stanley Druckenmiller", CIK: "0001536411"},
			"ICAHN":                    {Manager: "Carl Icahn", CIK: "0000921669"},
			"PAULSON":                  {Manager: "John Paulson", CIK: "0001035674"},
			"VIKING GLOBAL":            {Manager: "Andreas Halvorsen", CIK: "0001103804"},
			"ELLIOTT MANAGEMENT":       {Manager: "Paul Singer", CIK: "0001048445"},
		},
	}
}

// MatchAlias resolves a company name to a ticker via the alias table.
// Returns "" when no alias matches.
func (r *Reference) MatchAlias(companyName string) string {
	if companyName == "" {
		return ""
	}

	// Longer suffixes go first so " CORP" cannot eat into " CORPORATION".
	name := strings.ToUpper(strings.TrimSpace(companyName))
	for _, suffix := range []string{
		" CORPORATION", ", INC.", ", INC", " INC.", " INC", " CORP.", " CORP",
		" CLASS A", " CLASS B", " LLC", " LTD", " COM", " CO.", " CO",
	} {
		name = strings.ReplaceAll(name, suffix, "")
	}

	if ticker, ok := r.CompanyAliases[name]; ok {
		return ticker
	}
	for alias, ticker := range r.CompanyAliases {
		if strings.Contains(name, alias) || strings.Contains(alias, name) {
			return ticker
		}
	}
	return ""
}

// HighProfile reports whether a politician name matches the high-profile
// registry.
func (r *Reference) HighProfile(name string) bool {
	lower := strings.ToLower(name)
	for fragment := range r.HighProfilePoliticians {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// MatchFund looks up a famous fund by name fragment.
func (r *Reference) MatchFund(title string) (name string, fund Fund, ok bool) {
	upper := strings.ToUpper(title)
	for fragment, f := range r.FamousFunds {
		if strings.Contains(upper, fragment) {
			return fragment, f, true
		}
	}
	return "", Fund{}, false
}
