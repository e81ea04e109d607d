package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"insiderwire/internal/config"
	"insiderwire/internal/dashboard"
	"insiderwire/internal/pipeline"
	"insiderwire/internal/storage"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "insiderwire",
		Short: "insiderwire - insider trading alerts for social channels",
		Long: `insiderwire watches SEC Form 4 filings, congressional trade disclosures
and 13F institutional holdings, scores each disclosure for newsworthiness,
and republishes the notable ones to Twitter and Discord.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg)
			return cfg.Validate()
		},
	}

	rootCmd.AddCommand(newRunCmd(cfg))
	rootCmd.AddCommand(newDaemonCmd(cfg))
	rootCmd.AddCommand(newScrapeCmd(cfg))
	rootCmd.AddCommand(newPostCmd(cfg))
	rootCmd.AddCommand(newStatusCmd(cfg))
	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Log posts instead of sending them")

	return rootCmd
}

func setupLogging(cfg *config.Config) {
	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	log.DefaultLogger = log.Logger{
		Level:      level,
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			ColorOutput:    true,
			EndWithMessage: true,
		},
	}
}

func openPipeline(cfg *config.Config) (*pipeline.Pipeline, *storage.Store, error) {
	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return pipeline.New(cfg, store), store, nil
}

// signalContext returns a context canceled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newRunCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline once: scrape, analyze, score, post",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, store, err := openPipeline(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, cancel := signalContext()
			defer cancel()
			return p.RunOnce(ctx)
		},
	}
}

func newDaemonCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run continuously on the configured schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, store, err := openPipeline(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, cancel := signalContext()
			defer cancel()
			return p.RunDaemon(ctx)
		},
	}
}

func newScrapeCmd(cfg *config.Config) *cobra.Command {
	var famous bool

	cmd := &cobra.Command{
		Use:       "scrape [form4|congress|funds|all]",
		Short:     "Scrape one source without posting",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"form4", "congress", "funds", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "all"
			if len(args) == 1 {
				source = args[0]
			}

			p, store, err := openPipeline(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, cancel := signalContext()
			defer cancel()

			type job struct {
				name string
				run  func(context.Context) (int, error)
			}
			fundsJob := p.ScrapeFunds
			if famous {
				fundsJob = p.ScrapeFamousFunds
			}
			jobs := []job{
				{"form4", p.ScrapeInsiders},
				{"congress", p.ScrapeCongress},
				{"funds", fundsJob},
			}

			for _, j := range jobs {
				if source != "all" && source != j.name {
					continue
				}
				n, err := j.run(ctx)
				if err != nil {
					return fmt.Errorf("scrape %s: %w", j.name, err)
				}
				fmt.Printf("%s: %d new records\n", j.name, n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&famous, "famous", false, "Scrape only the tracked famous funds (13F source)")
	return cmd
}

func newPostCmd(cfg *config.Config) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Publish pending tier 1-2 alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, store, err := openPipeline(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, cancel := signalContext()
			defer cancel()

			if !cfg.DryRun && !yes {
				ok, err := confirmPosting(store)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted.")
					return nil
				}
			}

			n, err := p.PostAlerts(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Posted %d alerts\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON dashboard API",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			log.Info().Str("addr", cfg.DashboardAddr).Msg("dashboard listening")
			return dashboard.New(store).Run(cfg.DashboardAddr)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("insiderwire v1.0.0")
			fmt.Println("SEC filings in, social alerts out")
		},
	}
}
