package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"domainbot/internal/similarity"
)

var scoreJSON bool

var scoreCmd = &cobra.Command{
	Use:   "score <query> <text>",
	Short: "Explain the similarity score of a text against a query",
	Long: `score prints every signal the retriever combines when it compares a
user question with a stored question, answer or page.

Example:
  domainbotctl score "ساعت کاری" "ساعات کاری شرکت چیست؟"`,
	Args: cobra.ExactArgs(2),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "print the breakdown as JSON")
}

func runScore(cmd *cobra.Command, args []string) error {
	b := similarity.Breakdown(args[0], args[1])
	out := cmd.OutOrStdout()

	if scoreJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	rows := []struct {
		name   string
		value  float64
		weight float64
	}{
		{"substring", b.Substring, similarity.WeightSubstring},
		{"token_jaccard", b.TokenJaccard, similarity.WeightTokenJaccard},
		{"trigram_jaccard", b.TrigramJaccard, similarity.WeightTrigramJaccard},
		{"sequence_ratio", b.SequenceRatio, similarity.WeightSequenceRatio},
		{"overlap_ratio", b.OverlapRatio, similarity.WeightOverlapRatio},
	}
	fmt.Fprintln(tw, "signal\tvalue\tweight")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%.4f\t%.2f\n", r.name, r.value, r.weight)
	}
	if b.Exact {
		fmt.Fprintln(tw, "exact\tyes\t")
	}
	fmt.Fprintf(tw, "total\t%.4f\t\n", b.Total)
	return tw.Flush()
}
