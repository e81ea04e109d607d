package format

// Tweet templates by tier. Placeholders are substituted by render; a tier 1
// record rotates through its variants keyed on the record's natural ID so
// repeated runs produce the same text.

var insiderTier1Templates = []string{
	`🚨 BREAKING: ${ticker} {insider_role} {insider_name} just made a MASSIVE buy

💰 Bought: {shares} shares
💵 Value: ${value_display}
📅 Filed: {time_ago}

{anomaly_text}

{insight_text}

{tags}`,

	`🔥 INSIDER ALERT: ${ticker}

{insider_role} just bought ${value_display} worth of stock

{anomaly_text}

{insight_text}

What does {insider_name} know? 👀

{tags}`,

	`🚨 ${ticker} {insider_role} BUYING

{insider_name} just filed:
→ {shares} shares purchased
→ ${value_display} total value
→ {time_ago}

{anomaly_text}

{insight_text}

{tags}`,
}

var insiderTier2Templates = []string{
	`🔔 INSIDER BUY: ${ticker}

{insider_role} {insider_name} purchased {shares} shares (${value_display})

{anomaly_text}

Filed {time_ago}

#InsiderTrading #{ticker_clean}`,

	`📊 ${ticker} — Insider Activity

{insider_role} bought ${value_display}

{anomaly_text}

{insight_text}

#SmartMoney #{ticker_clean}`,
}

var insiderTier3Templates = []string{
	`📈 ${ticker}: {insider_role} bought {shares} shares (${value_display})

{anomaly_text}

#InsiderBuying`,
}

var insiderSaleTemplates = []string{
	`⚠️ INSIDER SELL: ${ticker}

{insider_role} {insider_name} sold {shares} shares (${value_display})

{anomaly_text}

Filed {time_ago}

#InsiderTrading #{ticker_clean}`,
}

const dailyRoundupTemplate = `📋 Today's Top Insider Buys:

{ranked_list}

Total insider buying today: ${total_value}

Which one are you watching? 👇

Full alerts: {link}

#InsiderTrading #SmartMoney`

const clusterBuyTemplate = `👀 CLUSTER BUYING DETECTED: ${ticker}

{count} insiders have bought in the past {days} days:

{insider_list}

Total value: ${total_value}

When multiple insiders buy together, pay attention 📈

{tags}`

var congressTier1Templates = []string{
	`🏛️ CONGRESS TRADE ALERT

{politician_name} ({party}-{state}) just {action} ${ticker}

💰 Amount: {value_range}
📅 Trade: {trade_date}
📅 Disclosed: {disclosure_date}

{anomaly_text}

Do they know something? 🤔

{tags}`,

	`🚨 POLITICIAN STOCK TRADE

{politician_name} {action} ${ticker}

Amount: {value_range}
Chamber: {chamber}

{anomaly_text}

#CongressTrading #STOCKAct

{tags}`,
}

var congressTier2Templates = []string{
	`🏛️ {politician_name} ({party}) {action} ${ticker}

Amount: {value_range}
Date: {trade_date}

{anomaly_text}

#CongressTrading`,

	`📊 Congress Trade: ${ticker}

{politician_name} ({party}-{state})
{action}: {value_range}

{anomaly_text}

#STOCKAct`,
}

var congressTier3Templates = []string{
	`🏛️ ${ticker}: {politician_name} ({party}) {action} {value_range}

#CongressTrading`,
}

var fundTier1Templates = []string{
	`🚨 {manager_name} 13F FILING

{fund_name} just disclosed quarterly holdings:

💼 Portfolio: ${total_value}
📊 Positions: {position_count}

Top Holdings:
{top_holdings_text}

What's {manager_name} seeing? 🧐

{tags}`,

	`📈 HEDGE FUND ALERT: {manager_name}

{fund_name} 13F just dropped

${total_value} portfolio across {position_count} positions

{anomaly_text}

{tags}`,
}

var fundTier2Templates = []string{
	`📊 13F Filing: {fund_name}

Manager: {manager_name}
Portfolio: ${total_value}
Positions: {position_count}

{anomaly_text}

#13F #HedgeFund`,
}

var fundTier3Templates = []string{
	`📈 {fund_name} filed 13F: ${total_value} across {position_count} positions

#13F`,
}

var insightTexts = []string{
	"Insiders are usually right. They know more than we do.",
	"Follow the smart money.",
	"When CEOs buy with their own money, pay attention.",
	"Insider buying often precedes positive news.",
	"This level of conviction is rare.",
}
