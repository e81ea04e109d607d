package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"insiderwire/internal/storage"
)

// confirmPosting shows what is queued and asks before going live.
func confirmPosting(store *storage.Store) (bool, error) {
	trades, err := store.UnpostedInsiderTrades(2, 20)
	if err != nil {
		return false, err
	}

	if len(trades) == 0 {
		fmt.Println("Nothing queued for posting.")
		return false, nil
	}

	fmt.Printf("Queued tier 1-2 insider alerts:\n")
	for _, t := range trades {
		ticker := t.Ticker
		if ticker == "" {
			ticker = "N/A"
		}
		fmt.Printf("  $%-6s %-16s $%.0f (score %d, tier %d)\n",
			ticker, t.InsiderRole, t.TotalValue, t.ViralityScore, t.Tier)
	}

	var ok bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Post %d alerts to live channels?", len(trades)),
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
