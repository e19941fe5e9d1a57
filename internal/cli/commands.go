package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tickermind/tickermind/internal/api"
	"github.com/tickermind/tickermind/internal/chat"
	"github.com/tickermind/tickermind/internal/config"
	"github.com/tickermind/tickermind/internal/dashboard"
	"github.com/tickermind/tickermind/internal/format"
	"github.com/tickermind/tickermind/internal/reader"
)

const version = "1.0.0"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	var client *api.Client

	rootCmd := &cobra.Command{
		Use:   "tickermind",
		Short: "TickerMind - AI stock market chat and dashboard",
		Long: `TickerMind is a terminal client for the TickerMind analysis backend.
It provides a conversational interface for stock questions plus dashboards,
prices, news, and technical-analysis views.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if url, _ := cmd.Flags().GetString("api-url"); url != "" {
				cfg.APIBaseURL = url
			}
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
			}
			client = api.New(cfg.APIBaseURL, api.WithTimeout(cfg.RequestTimeout))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewInteractiveShell(cfg, client).Start(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().String("api-url", "", "Backend API base URL")
	rootCmd.PersistentFlags().Bool("debug", false, "Show raw failure details")

	rootCmd.AddCommand(newChatCmd(cfg, &client))
	rootCmd.AddCommand(newDashboardCmd(cfg, &client))
	rootCmd.AddCommand(newPriceCmd(&client))
	rootCmd.AddCommand(newNewsCmd(cfg, &client))
	rootCmd.AddCommand(newAnalysisCmd(&client))
	rootCmd.AddCommand(newIngestCmd(&client))
	rootCmd.AddCommand(newTickersCmd(&client))
	rootCmd.AddCommand(newHealthCmd(&client))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newChatCmd asks a single question without entering the shell.
func newChatCmd(cfg *config.Config, client **api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [QUESTION]",
		Short: "Ask one question about a stock",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker, _ := cmd.Flags().GetString("ticker")
			question := ""
			for i, a := range args {
				if i > 0 {
					question += " "
				}
				question += a
			}

			session := chat.NewSession(*client, cfg.DefaultTicker)
			if err := session.SendMessage(cmd.Context(), question, ticker); err != nil {
				return err
			}
			for _, m := range session.Messages() {
				fmt.Print(renderMessage(m))
			}
			if detail := session.LastError(); detail != "" {
				if cfg.Debug {
					fmt.Println(dimStyle.Render("detail: " + detail))
				}
				return fmt.Errorf("chat request failed")
			}
			return nil
		},
	}
	cmd.Flags().String("ticker", "", "Ticker to scope the question to")
	return cmd
}

// newDashboardCmd renders the aggregated market overview.
func newDashboardCmd(cfg *config.Config, client **api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the market dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			signal, _ := cmd.Flags().GetString("signal")
			signal = strings.ToUpper(strings.TrimSpace(signal))

			agg := dashboard.NewAggregator(*client, cfg.NewsLimit, cfg.NewsDays)
			snap, err := agg.Refresh(cmd.Context(), limit, signal)
			if err != nil {
				return fmt.Errorf("dashboard refresh failed (retry with the same flags): %w", err)
			}
			fmt.Print(renderSnapshot(snap))
			return nil
		},
	}
	cmd.Flags().Int("limit", 10, "Maximum number of tickers")
	cmd.Flags().String("signal", "", "Filter by signal (STRONG_BUY/BUY/HOLD/SELL/STRONG_SELL)")
	return cmd
}

// newPriceCmd shows the latest quote or price history for a ticker.
func newPriceCmd(client **api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price TICKER",
		Short: "Show the latest price for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := args[0]
			history, _ := cmd.Flags().GetBool("history")
			days, _ := cmd.Flags().GetInt("days")
			startFlag, _ := cmd.Flags().GetString("start")
			endFlag, _ := cmd.Flags().GetString("end")

			if startFlag != "" || endFlag != "" {
				if startFlag == "" || endFlag == "" {
					return fmt.Errorf("--start and --end must be given together")
				}
				start, err := time.Parse("2006-01-02", startFlag)
				if err != nil {
					return fmt.Errorf("invalid --start date %q (want YYYY-MM-DD)", startFlag)
				}
				end, err := time.Parse("2006-01-02", endFlag)
				if err != nil {
					return fmt.Errorf("invalid --end date %q (want YYYY-MM-DD)", endFlag)
				}
				rng, err := (*client).PriceRange(cmd.Context(), ticker, start, end)
				if err != nil {
					return err
				}
				fmt.Print(renderPriceRange(rng))
				return nil
			}

			if history {
				bars, err := (*client).PriceHistory(cmd.Context(), ticker, days)
				if err != nil {
					return err
				}
				fmt.Print(renderPriceHistory(format.NormalizeTicker(ticker), bars))
				return nil
			}

			price, err := (*client).LatestPrice(cmd.Context(), ticker)
			if err != nil {
				return err
			}
			fmt.Print(renderLatestPrice(price))
			return nil
		},
	}
	cmd.Flags().Bool("history", false, "Show daily bars instead of the latest quote")
	cmd.Flags().Int("days", 30, "Days of history")
	cmd.Flags().String("start", "", "Range start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "Range end date (YYYY-MM-DD)")
	return cmd
}

// newNewsCmd lists, searches, and reads news.
func newNewsCmd(cfg *config.Config, client **api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news TICKER",
		Short: "Show recent news for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			days, _ := cmd.Flags().GetInt("days")
			articles, err := (*client).News(cmd.Context(), args[0], limit, days)
			if err != nil {
				return err
			}
			fmt.Print(renderNewsList(articles))
			return nil
		},
	}
	cmd.Flags().Int("limit", 10, "Maximum number of articles")
	cmd.Flags().Int("days", 7, "Days back to search")

	cmd.AddCommand(&cobra.Command{
		Use:   "read URL",
		Short: "Fetch and display a news article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := reader.New(cfg.RequestTimeout)
			article, err := r.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(renderArticle(article))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sources TICKER",
		Short: "Show the per-source article breakdown for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := (*client).NewsSources(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(titleStyle.Render(sources.Ticker) +
				dimStyle.Render(fmt.Sprintf("  %d articles", sources.TotalArticles)))
			for _, src := range sources.Sources {
				name, _ := src["source"].(string)
				count, _ := src["article_count"].(float64)
				fmt.Printf("  %-24s %s\n", name,
					dimStyle.Render(fmt.Sprintf("%d articles", int(count))))
			}
			return nil
		},
	})

	searchCmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search news articles by keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			query := ""
			for i, a := range args {
				if i > 0 {
					query += " "
				}
				query += a
			}
			result, err := (*client).SearchNews(cmd.Context(), query, limit)
			if err != nil {
				return err
			}
			fmt.Println(dimStyle.Render(fmt.Sprintf("%d results for %q", result.Count, result.Query)))
			fmt.Print(renderNewsList(result.Results))
			return nil
		},
	}
	searchCmd.Flags().Int("limit", 10, "Maximum number of results")
	cmd.AddCommand(searchCmd)

	return cmd
}

// newAnalysisCmd shows per-ticker technical analysis.
func newAnalysisCmd(client **api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analysis TICKER",
		Short: "Show the latest analysis for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, _ := cmd.Flags().GetBool("summary")
			historyDays, _ := cmd.Flags().GetInt("history")

			if summary {
				s, err := (*client).TickerSummary(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Print(renderSummary(s))
				return nil
			}
			if historyDays > 0 {
				h, err := (*client).AnalysisHistory(cmd.Context(), args[0], historyDays)
				if err != nil {
					return err
				}
				fmt.Println(titleStyle.Render(h.Ticker) +
					dimStyle.Render(fmt.Sprintf("  %d analyses", h.DataPoints)))
				for _, a := range h.History {
					fmt.Printf("  %-12s %s  %s\n", a.Date, signalStyle(a.Signal),
						dimStyle.Render("confidence "+format.Confidence(a.Confidence)))
				}
				return nil
			}

			a, err := (*client).TickerAnalysis(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(renderAnalysis(a))
			return nil
		},
	}
	cmd.Flags().Bool("summary", false, "Show the condensed recommendation instead")
	cmd.Flags().Int("history", 0, "Show N days of past analyses instead")
	return cmd
}

// newIngestCmd triggers backend ingestion jobs.
func newIngestCmd(client **api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest TICKER...",
		Short: "Trigger data ingestion for one or more tickers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				status, err := (*client).Ingest(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				msg := status.Message
				if msg == "" {
					msg = fmt.Sprintf("news +%d, prices +%d",
						status.NewsArticlesAdded, status.PriceRecordsAdded)
				}
				fmt.Println(headerStyle.Render(status.Ticker) + "  " + msg)
				return nil
			}
			if err := (*client).IngestBatch(cmd.Context(), args); err != nil {
				return err
			}
			fmt.Println(dimStyle.Render(fmt.Sprintf("Ingestion started for %d tickers.", len(args))))
			return nil
		},
	}
}

// newTickersCmd lists tickers with available data.
func newTickersCmd(client **api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "tickers",
		Short: "List tickers with available price data",
		RunE: func(cmd *cobra.Command, args []string) error {
			tickers, err := (*client).AvailableTickers(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range tickers {
				fmt.Println(t)
			}
			return nil
		},
	}
}

// newHealthCmd checks the backend.
func newHealthCmd(client **api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check backend health",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			h, err := (*client).Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("backend unreachable: %w", err)
			}
			fmt.Printf("%s  %s  %s\n",
				headerStyle.Render("API"), h.Status,
				dimStyle.Render(fmt.Sprintf("v%s, %s", h.Version, time.Since(start).Round(time.Millisecond))))

			db, err := (*client).DatabaseHealth(cmd.Context())
			if err != nil {
				fmt.Println(errorStyle.Render("DB   unavailable: " + err.Error()))
				return nil
			}
			fmt.Printf("%s   %s  %s\n",
				headerStyle.Render("DB"), db.Status, dimStyle.Render(db.Database))
			for table, n := range db.Stats {
				fmt.Println(dimStyle.Render(fmt.Sprintf("  %-18s %d", table, n)))
			}
			return nil
		},
	}
	return cmd
}

// newVersionCmd prints version information.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tickermind v%s\n", version)
		},
	}
}
