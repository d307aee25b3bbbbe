package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimax/internal/catalog"
	"github.com/jonathan/resume-optimax/internal/observability"
)

func newSkillsCmd() *cobra.Command {
	var query string
	var exclude []string

	cmd := &cobra.Command{
		Use:   "skills",
		Short: "List predefined skills",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, skill := range catalog.SearchSkills(query, exclude) {
				fmt.Fprintf(w, "%s\t%s\n", skill.Name, skill.Category)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only skills whose name contains this text")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Skills already selected")
	return cmd
}

func newJobTitlesCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "job-titles",
		Short: "List popular job titles",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, title := range catalog.SearchJobTitles(query) {
				fmt.Fprintln(cmd.OutOrStdout(), title)
			}
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only titles containing this text")
	return cmd
}

func newTipsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tips",
		Short: "Show resume improvement tips",
		Run: func(cmd *cobra.Command, _ []string) {
			observability.NewPrinter(cmd.OutOrStdout()).PrintTips(catalog.StaticTips())
		},
	}
}
