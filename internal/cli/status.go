package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"insiderwire/internal/config"
	"insiderwire/internal/scoring"
	"insiderwire/internal/storage"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(1, 2).
			Width(60)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	tierStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)
)

func newStatusCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show database and queue status",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Summary()
			if err != nil {
				return err
			}

			var b strings.Builder
			row := func(label string, value string) {
				b.WriteString(labelStyle.Render(fmt.Sprintf("%-22s", label)))
				b.WriteString(valueStyle.Render(value))
				b.WriteByte('\n')
			}
			row("Insider trades", fmt.Sprintf("%d", stats.InsiderTrades))
			row("Congress trades", fmt.Sprintf("%d", stats.CongressTrades))
			row("13F filings", fmt.Sprintf("%d", stats.FundFilings))
			row("Twitter posted", fmt.Sprintf("%d", stats.TwitterPosted))
			row("Avg virality score", fmt.Sprintf("%.1f", stats.AvgViralityScore))
			b.WriteString(labelStyle.Render(fmt.Sprintf("%-22s", "Unposted tier 1")))
			b.WriteString(tierStyle.Render(fmt.Sprintf("%d", stats.UnpostedTier1)))

			fmt.Println(titleStyle.Render("insiderwire status"))
			fmt.Println(boxStyle.Render(b.String()))

			trades, err := store.UnpostedInsiderTrades(2, 5)
			if err != nil {
				return err
			}
			if len(trades) > 0 {
				fmt.Println(titleStyle.Render("Next up"))
				for _, t := range trades {
					ticker := t.Ticker
					if ticker == "" {
						ticker = "N/A"
					}
					fmt.Printf("  $%-6s %-16s score %3d  %s\n",
						ticker, t.InsiderRole, t.ViralityScore,
						tierStyle.Render(scoring.TierDescription(t.Tier)))
				}
			}
			return nil
		},
	}
}
