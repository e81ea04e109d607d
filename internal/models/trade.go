package models

import "time"

// Action is the normalized direction of a disclosed transaction.
type Action string

const (
	ActionPurchase Action = "purchase"
	ActionSale     Action = "sale"
	// ActionSnapshot marks 13F portfolio disclosures, which report holdings
	// rather than a single directional trade.
	ActionSnapshot Action = "snapshot"
)

// InsiderTrade is one SEC Form 4 non-derivative transaction, aggregated per
// filing. AnomalyTags/AnomalyTexts are filled by the analyzer, ViralityScore
// and Tier by the scorer; everything else comes from the scraper.
type InsiderTrade struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AccessionNumber string `gorm:"uniqueIndex" json:"accession_number"`
	FilingDate      string `gorm:"index" json:"filing_date"`
	FilingURL       string `json:"filing_url"`

	Ticker      string `gorm:"index" json:"ticker"`
	CompanyName string `json:"company_name"`
	CompanyCIK  string `json:"company_cik"`

	InsiderName       string `json:"insider_name"`
	InsiderCIK        string `gorm:"index" json:"insider_cik"`
	InsiderRole       string `json:"insider_role"`
	OfficerTitle      string `json:"officer_title"`
	IsDirector        bool   `json:"is_director"`
	IsOfficer         bool   `json:"is_officer"`
	IsTenPercentOwner bool   `json:"is_ten_percent_owner"`

	TransactionCode string  `json:"transaction_code"` // raw SEC code: P, S, A, M
	Action          Action  `json:"action"`
	TransactionDate string  `json:"transaction_date"`
	Shares          int64   `json:"shares"`
	PricePerShare   float64 `json:"price_per_share"`
	TotalValue      float64 `json:"total_value"`

	// nil when the filing did not report post-transaction holdings; the
	// position-delta rules treat that as "no signal", not as zero shares.
	SharesOwnedAfter *int64 `json:"shares_owned_after"`

	AnomalyTags  []string `gorm:"serializer:json" json:"anomalies"`
	AnomalyTexts []string `gorm:"serializer:json" json:"anomaly_texts"`
	IsBullish    bool     `json:"is_bullish"`
	IsBearish    bool     `json:"is_bearish"`

	ViralityScore int `gorm:"index" json:"virality_score"`
	Tier          int `json:"tier"`

	TwitterPosted   bool   `gorm:"index" json:"twitter_posted"`
	TwitterPostID   string `json:"twitter_post_id"`
	TwitterPostedAt string `json:"twitter_posted_at"`
	DiscordPosted   bool   `json:"discord_posted"`
	DiscordPostedAt string `json:"discord_posted_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HoldingsReported reports whether the filing carried post-transaction
// holdings.
func (t *InsiderTrade) HoldingsReported() bool {
	return t.SharesOwnedAfter != nil
}

// HoldingsAfter returns the reported post-transaction share count, or 0 when
// unreported.
func (t *InsiderTrade) HoldingsAfter() int64 {
	if t.SharesOwnedAfter == nil {
		return 0
	}
	return *t.SharesOwnedAfter
}

// CongressTrade is one congressional financial-disclosure transaction.
// Amounts are disclosed as ranges, never exact values.
type CongressTrade struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Source     string `json:"source"`
	ExternalID string `gorm:"uniqueIndex" json:"external_id"`

	PoliticianName    string `gorm:"index" json:"politician_name"`
	PoliticianParty   string `json:"politician_party"`
	PoliticianState   string `json:"politician_state"`
	PoliticianChamber string `json:"politician_chamber"`
	IsHighProfile     bool   `json:"is_high_profile"`

	Ticker          string `gorm:"index" json:"ticker"`
	CompanyName     string `json:"company_name"`
	Action          Action `json:"action"`
	TransactionDate string `gorm:"index" json:"transaction_date"`
	DisclosureDate  string `json:"disclosure_date"`
	AmountRange     string `json:"amount_range"`
	AmountLow       int64  `json:"amount_low"`
	AmountHigh      int64  `json:"amount_high"`
	AssetType       string `json:"asset_type"`
	DaysToDisclose  int    `json:"days_to_disclose"`

	AnomalyTags  []string `gorm:"serializer:json" json:"anomalies"`
	AnomalyTexts []string `gorm:"serializer:json" json:"anomaly_texts"`

	ViralityScore int `json:"virality_score"`
	Tier          int `json:"tier"`

	TwitterPosted bool   `json:"twitter_posted"`
	TwitterPostID string `json:"twitter_post_id"`
	DiscordPosted bool   `json:"discord_posted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Holding is a single position inside a 13F information table.
type Holding struct {
	CompanyName string  `json:"company_name"`
	Ticker      string  `json:"ticker"`
	CUSIP       string  `json:"cusip"`
	Value       float64 `json:"value"`
	Shares      int64   `json:"shares"`
	ShareType   string  `json:"share_type"`
}

// FundFiling is one 13F-HR quarterly holdings disclosure.
type FundFiling struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AccessionNumber string `gorm:"uniqueIndex" json:"accession_number"`
	FilingDate      string `json:"filing_date"`
	ReportDate      string `json:"report_date"`
	FilingURL       string `json:"filing_url"`

	FundName     string `gorm:"index" json:"fund_name"`
	FundCIK      string `json:"fund_cik"`
	ManagerName  string `json:"manager_name"`
	IsFamousFund bool   `json:"is_famous_fund"`

	TotalValue    float64   `json:"total_value"`
	PositionCount int       `json:"position_count"`
	TopHoldings   []Holding `gorm:"serializer:json" json:"top_holdings"`

	AnomalyTags  []string `gorm:"serializer:json" json:"anomalies"`
	AnomalyTexts []string `gorm:"serializer:json" json:"anomaly_texts"`

	ViralityScore int `json:"virality_score"`
	Tier          int `json:"tier"`

	TwitterPosted bool `json:"twitter_posted"`
	DiscordPosted bool `json:"discord_posted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
