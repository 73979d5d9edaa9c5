package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"domainbot/internal/storage"
)

var assumeYes bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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
		fmt.Fprintf(cmd.OutOrStdout(), "database ready: %s\n", cfg.DBPath)
		return nil
	},
}

var clearKBCmd = &cobra.Command{
	Use:   "clear-kb",
	Short: "Delete every knowledge-base entry",
	Long: `clear-kb removes all curated question/answer pairs. Website pages,
intents and greetings are kept.

Example:
  domainbotctl clear-kb --yes`,
	Args: cobra.NoArgs,
	RunE: runClearKB,
}

func init() {
	clearKBCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(migrateCmd, clearKBCmd)
}

func runClearKB(cmd *cobra.Command, args []string) error {
	if !assumeYes {
		fmt.Fprint(cmd.OutOrStdout(), "Delete every knowledge-base entry? [y/N] ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "aborted")
			return nil
		}
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

	n, err := storage.NewQARepo(db).DeleteAll(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d knowledge-base entries\n", n)
	return nil
}
