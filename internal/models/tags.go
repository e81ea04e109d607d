package models

// Anomaly tags form a fixed controlled vocabulary per record type. The
// analyzer appends them in detection order; the scorer prices them from
// per-direction tables.
const (
	// Insider purchases.
	TagCEOFounderBuy       = "ceo_founder_buy"
	TagCFOBuy              = "cfo_buy"
	TagChairmanBuy         = "chairman_buy"
	TagMajorShareholderBuy = "major_shareholder_buy"
	TagPositionDoubled     = "position_doubled"
	TagMajorPositionUp     = "major_position_increase"
	TagSignificantPosUp    = "significant_position_increase"
	TagFirstEverPurchase   = "first_ever_purchase"
	TagClusterBuy          = "cluster_buy"
	TagMultipleBuyers      = "multiple_buyers"
	TagFirstPurchase       = "first_purchase"
	TagFirstBuyInYears     = "first_buy_in_years"
	TagFirstBuyInYear      = "first_buy_in_year"
	TagConsecutiveBuying   = "consecutive_buying"
	TagSellerTurnedBuyer   = "seller_turned_buyer"
	TagMassiveBuy          = "massive_buy"
	TagLargeBuy            = "large_buy"
	TagSignificantBuy      = "significant_buy"
	TagMillionPlusBuy      = "million_plus_buy"
	TagUnusuallyLarge      = "unusually_large"
	TagLargerThanUsual     = "larger_than_usual"
	TagDirectorBuy         = "director_buy"

	// Insider sales.
	TagCEOLargeSale         = "ceo_large_sale"
	TagCEOSale              = "ceo_sale"
	TagCFOSale              = "cfo_sale"
	TagMajorShareholderSale = "major_shareholder_sale"
	TagCompleteExit         = "complete_exit"
	TagMajorReduction       = "major_reduction"
	TagSignificantReduction = "significant_reduction"
	TagClusterSell          = "cluster_sell"
	TagMultipleSellers      = "multiple_sellers"
	TagMassiveSale          = "massive_sale"
	TagLargeSale            = "large_sale"

	// Congressional trades.
	TagHighProfilePolitician = "high_profile_politician"
	TagMillionPlusTrade      = "million_plus_trade"
	TagLargeTrade            = "large_trade"
	TagLateDisclosure        = "late_disclosure"
	TagSlowDisclosure        = "slow_disclosure"
	TagMemeStock             = "meme_stock"
	TagPurchase              = "purchase"

	// 13F filings.
	TagFamousFund       = "famous_fund"
	TagHugePortfolio    = "huge_portfolio"
	TagBillionPortfolio = "billion_portfolio"
	TagMemeStockHolding = "meme_stock_holding"
	TagMag7Holding      = "mag7_holding"
)
