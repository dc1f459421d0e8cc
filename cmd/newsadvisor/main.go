// Market News Advisor — sentiment-driven NSE sector recommendations.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seenimoa/newsadvisor/api"
	"github.com/seenimoa/newsadvisor/internal/alert"
	"github.com/seenimoa/newsadvisor/internal/config"
	"github.com/seenimoa/newsadvisor/pkg/models"
	"github.com/seenimoa/newsadvisor/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "newsadvisor",
	Short: "Market News Advisor — sentiment-driven NSE sector recommendations",
	Long: `Market News Advisor
Fetches Indian business news headlines, scores their sentiment, maps them
to industry sectors, analyzes the historical performance of each sector's
stocks, and ranks them into buy/avoid recommendations.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sectorsCmd)
	rootCmd.AddCommand(performanceCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Market News Advisor %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Scan Command ---

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one full pipeline pass and print the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		sendAlerts, _ := cmd.Flags().GetBool("alert")

		adv, err := api.BuildAdvisor(cfg)
		if err != nil {
			return err
		}

		fmt.Println("🔍 Fetching headlines and analyzing...")
		report, err := adv.Scan(cmd.Context())
		if err != nil {
			return err
		}

		if len(report.Headlines) == 0 {
			fmt.Printf("⚠️  No headlines fetched (%d sources failed). Check feed connectivity.\n",
				report.SourcesFailed)
			return nil
		}

		fmt.Printf("\n📰 %d headlines (%d sources ok, %d failed)\n\n",
			len(report.Headlines), report.SourcesOK, report.SourcesFailed)

		for _, a := range report.Analyses {
			if a.Sentiment.Label == models.SentimentNeutral {
				continue
			}
			printAnalysis(a)
		}

		if len(report.Actionable()) == 0 {
			fmt.Println("💡 No stocks met the filter criteria this pass.")
		}

		if sendAlerts {
			notifier, err := alert.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
			if err != nil {
				return err
			}
			if !notifier.Enabled() {
				fmt.Println("⚠️  Telegram alerts not configured; skipping.")
				return nil
			}
			for _, a := range report.Actionable() {
				if err := notifier.Send(a); err != nil {
					// Alert failure never invalidates the printed results.
					fmt.Printf("⚠️  Alert failed: %v\n", err)
				}
			}
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().Bool("alert", false, "send Telegram alerts for actionable headlines")
}

func printAnalysis(a models.HeadlineAnalysis) {
	emoji := "🟢"
	if a.Sentiment.Label == models.SentimentNegative {
		emoji = "🔴"
	}
	fmt.Printf("%s [%s] %s\n", emoji, a.Sentiment.Label, a.Headline.Title)
	fmt.Printf("   Sector: %s | Score: %.2f\n", orDash(a.Sector), a.Sentiment.Score)

	switch a.Outcome {
	case models.OutcomeRecommended:
		for i, rec := range a.Recommendations {
			fmt.Printf("   %d. %-12s %s (avg daily %.3f%%)\n",
				i+1, rec.Symbol, rec.Action, rec.AvgReturn*100)
		}
	case models.OutcomeNoSector:
		fmt.Println("   No sector keyword matched.")
	case models.OutcomeNoSymbols:
		fmt.Println("   Sector has no known symbols.")
	case models.OutcomeNoData:
		fmt.Println("   Price history unavailable for all candidates.")
	case models.OutcomeNoneQualified:
		fmt.Println("   No stocks met the filter criteria.")
	}
	fmt.Println()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// --- Serve Command (API Server + Web UI) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server with the embedded web UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := api.NewServer(cfg)
		if err != nil {
			return err
		}

		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("🌐 Market News Advisor listening on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

// --- Sectors Command ---

var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "Show the sector catalog and symbol membership",
	RunE: func(cmd *cobra.Command, args []string) error {
		adv, err := api.BuildAdvisor(cfg)
		if err != nil {
			return err
		}

		for _, sec := range adv.Catalog().Sectors() {
			fmt.Printf("%s\n", sec.Name)
			fmt.Printf("  keywords: %v\n", sec.Keywords)
			if syms, ok := adv.Symbols().Symbols(sec.Name); ok {
				fmt.Printf("  symbols:  %v\n", syms)
			} else {
				fmt.Println("  symbols:  (none mapped)")
			}
		}
		return nil
	},
}

// --- Performance Command ---

var performanceCmd = &cobra.Command{
	Use:   "performance [ticker]",
	Short: "Show the average daily return for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := utils.NormalizeTicker(args[0])

		adv, err := api.BuildAdvisor(cfg)
		if err != nil {
			return err
		}

		stats, ok := adv.AnalyzeSymbol(cmd.Context(), ticker)
		if !ok {
			fmt.Printf("📊 %s: price history unavailable\n", ticker)
			return nil
		}
		fmt.Printf("📊 %s: avg daily return %.4f%% over %d trading days\n",
			stats.Symbol, stats.AvgReturn*100, stats.Days)
		return nil
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  Market News Advisor — Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:      %s (%s)\n", version, commit)
		fmt.Printf("  Time (IST):   %s\n", utils.FormatDateTimeIST(utils.NowIST()))
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    Headline limit:   %d\n", cfg.Feeds.HeadlineLimit)
		fmt.Printf("    Lookback window:  %d days\n", cfg.Market.WindowDays)
		fmt.Printf("    Buy threshold:    %+.4f\n", cfg.Recommend.BuyThreshold)
		fmt.Printf("    Avoid threshold:  %+.4f\n", cfg.Recommend.AvoidThreshold)
		fmt.Printf("    API Server:       %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Println()

		fmt.Println("  Credentials:")
		for _, c := range config.CheckCredentials(cfg) {
			status := "❌ not set"
			if c.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", c.Source, c.Masked)
			}
			fmt.Printf("    %-20s %s\n", c.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
