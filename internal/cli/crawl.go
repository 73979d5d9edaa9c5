package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"domainbot/internal/crawler"
	"domainbot/internal/storage"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl <source-id>",
	Short: "Crawl one website source and wait for it to finish",
	Long: `crawl discovers and downloads the pages of a registered website
source, storing their text for retrieval. It runs in the foreground and
prints a report when done.

Example:
  domainbotctl crawl 1`,
	Args: cobra.ExactArgs(1),
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	sourceID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || sourceID <= 0 {
		return fmt.Errorf("invalid source id %q", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	ingester := crawler.NewIngester(
		storage.NewSourceRepo(db),
		storage.NewPageRepo(db),
		crawler.NewFetcher(cfg.Crawl),
		cfg.Crawl.MaxPages,
	)
	report, err := ingester.IngestSource(cmd.Context(), sourceID)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "source %d: %s\n", report.SourceID, report.Status)
	fmt.Fprintf(out, "  discovered %d\n  created    %d\n  updated    %d\n  unchanged  %d\n  failed     %d\n",
		report.Discovered, report.Created, report.Updated, report.Unchanged, report.Failed)
	return err
}
