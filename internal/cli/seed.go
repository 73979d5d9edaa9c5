package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"domainbot/internal/seed"
	"domainbot/internal/storage"
)

var (
	seedFile  string
	seedWatch bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a YAML seed file into the database",
	Long: `seed upserts knowledge-base entries, intents, greetings and website
sources from a YAML file. Running it twice with the same file changes
nothing.

Example:
  domainbotctl seed --file seed.yaml
  domainbotctl seed --file seed.yaml --watch`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "seed file (default: SEED_FILE)")
	seedCmd.Flags().BoolVar(&seedWatch, "watch", false, "keep running and re-apply the file when it changes")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := seedFile
	if path == "" {
		path = cfg.SeedFile
	}
	if path == "" {
		return errors.New("no seed file given: use --file or SEED_FILE")
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	stores := seed.Stores{
		QA:        storage.NewQARepo(db),
		Intents:   storage.NewIntentRepo(db),
		Greetings: storage.NewGreetingRepo(db),
		Sources:   storage.NewSourceRepo(db),
	}
	out := cmd.OutOrStdout()
	apply := func(ctx context.Context) error {
		sum, err := seed.ApplyFile(ctx, path, stores)
		if err != nil {
			return err
		}
		printSummary(out, sum)
		return nil
	}

	if err := apply(cmd.Context()); err != nil {
		return err
	}
	if !seedWatch {
		return nil
	}
	return seed.Watch(cmd.Context(), path, apply)
}

func printSummary(w io.Writer, sum seed.Summary) {
	rows := []struct {
		name string
		c    seed.Counts
	}{
		{"kb", sum.KB},
		{"intents", sum.Intents},
		{"greetings", sum.Greetings},
		{"sources", sum.Sources},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-10s created=%d updated=%d unchanged=%d\n", r.name, r.c.Created, r.c.Updated, r.c.Unchanged)
	}
}
