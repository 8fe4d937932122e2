// Package cli implements learnctl, a terminal browser for the question
// catalog. It evaluates the same filter and featured selection as the web
// pages but keeps no session state.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"learncenter/internal/learning"
	"learncenter/internal/models"
)

var (
	idColor      = color.New(color.FgHiBlue)
	headingColor = color.New(color.Bold)
	badgeColor   = color.New(color.FgCyan)
	userColor    = color.New(color.FgHiBlack)
	mutedColor   = color.New(color.FgYellow)
)

// RootCmd builds the learnctl command tree over repo.
func RootCmd(repo learning.Repository, version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "learnctl",
		Short:   "Browse the Real Estate Learning Center questions",
		Version: version,
		Long: `learnctl lists, filters and shows the learning-center questions from the
catalog compiled into the binary. Filtering matches the web pages: exact
category and user type, case-insensitive text search on question and answer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(ListCmd(repo))
	root.AddCommand(FeaturedCmd(repo))
	root.AddCommand(ShowCmd(repo))
	root.AddCommand(TaxonomyCmd())
	return root
}

// ListCmd lists the questions matching the filter flags.
func ListCmd(repo learning.Repository) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions matching category, user type and search text",
		Long: `List questions matching the given filters. Omitted filters match everything.

Examples:
  learnctl list                                  # every question
  learnctl list --category beginners --user-type buyers
  learnctl list -q "stamp duty" --answers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			userType, _ := cmd.Flags().GetString("user-type")
			query, _ := cmd.Flags().GetString("query")
			answers, _ := cmd.Flags().GetBool("answers")

			c, err := learning.ParseCategory(category)
			if err != nil {
				return fmt.Errorf("%w\nHint: run 'learnctl taxonomy' for valid values", err)
			}
			u, err := learning.ParseUserType(userType)
			if err != nil {
				return fmt.Errorf("%w\nHint: run 'learnctl taxonomy' for valid values", err)
			}

			found := learning.Filter(repo.All(), learning.Selectors{Category: c, UserType: u, Query: query})
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, headingColor.Sprint(learning.CountLabel(len(found))))
			if len(found) == 0 {
				fmt.Fprintln(out, mutedColor.Sprint(learning.EmptyMessage))
				return nil
			}
			fmt.Fprintln(out)
			if answers {
				for _, q := range found {
					writeQuestion(out, q)
					fmt.Fprintln(out)
				}
				return nil
			}
			writeTable(out, found)
			return nil
		},
	}

	cmd.Flags().String("category", "", "category to filter by (e.g. beginners)")
	cmd.Flags().String("user-type", "", "user type to filter by (e.g. buyers)")
	cmd.Flags().StringP("query", "q", "", "text to search in questions and answers")
	cmd.Flags().Bool("answers", false, "print answers as well")
	return cmd
}

// FeaturedCmd prints the featured shelf.
func FeaturedCmd(repo learning.Repository) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "featured",
		Short: "Show the featured questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			query, _ := cmd.Flags().GetString("query")
			out := cmd.OutOrStdout()

			if !learning.ShelfVisible(query) {
				fmt.Fprintln(out, mutedColor.Sprint("Featured questions are hidden while searching."))
				return nil
			}
			featured := repo.Featured(limit)
			fmt.Fprintln(out, headingColor.Sprint("Featured Questions"))
			if len(featured) == 0 {
				fmt.Fprintln(out, mutedColor.Sprint("(none)"))
				return nil
			}
			writeTable(out, featured)
			return nil
		},
	}

	cmd.Flags().Int("limit", learning.DefaultFeaturedLimit, "maximum number of featured questions")
	cmd.Flags().StringP("query", "q", "", "committed search text; a non-empty value hides the shelf")
	return cmd
}

// ShowCmd prints one question with its answer.
func ShowCmd(repo learning.Repository) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a question and its answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, ok := repo.Find(args[0])
			if !ok {
				return fmt.Errorf("question %q not found\nHint: run 'learnctl list' to see question ids", args[0])
			}
			writeQuestion(cmd.OutOrStdout(), q)
			return nil
		},
	}
}

// TaxonomyCmd lists the categories and user types.
func TaxonomyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "taxonomy",
		Short: "List categories and user types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

			fmt.Fprintln(out, headingColor.Sprint("Categories"))
			for _, c := range models.Categories {
				fmt.Fprintf(w, "  %s\t%s\n", badgeColor.Sprint(c.ID), c.Name)
			}
			w.Flush()

			fmt.Fprintln(out)
			fmt.Fprintln(out, headingColor.Sprint("User types"))
			for _, u := range models.UserTypes {
				fmt.Fprintf(w, "  %s\t%s\n", userColor.Sprint(u.ID), u.Name)
			}
			return w.Flush()
		},
	}
}

// writeTable prints one row per question: id, badges, question text.
func writeTable(out io.Writer, questions []models.Question) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, q := range questions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			idColor.Sprint(q.ID),
			badgeColor.Sprint(q.CategoryLabel()),
			userColor.Sprint(q.UserTypeLabel()),
			q.Question,
		)
	}
	w.Flush()
}

// writeQuestion prints a question in the layout of the modal detail view.
func writeQuestion(out io.Writer, q models.Question) {
	fmt.Fprintf(out, "%s %s\n", idColor.Sprint(q.ID), headingColor.Sprint(q.Question))
	fmt.Fprintf(out, "%s %s\n", badgeColor.Sprintf("[%s]", q.CategoryLabel()), userColor.Sprintf("[%s]", q.UserTypeLabel()))
	fmt.Fprintln(out, strings.TrimSpace(q.Answer))
}
