package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a mission graph document",
		Long: `validate parses the document and lists every reference that does not
resolve. Dangling references are reported but do not fail the command; the
generator skips those records.`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d mission types, %d missions, %d systems, %d planets, %d links\n",
		len(ds.MissionTypes), len(ds.Missions), len(ds.Systems), len(ds.Planets), len(ds.Links))

	issues := ds.Check()
	if len(issues) == 0 {
		fmt.Fprintln(out, okStyle.Render("No dangling references"))
		return nil
	}

	fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("%d dangling references", len(issues))))
	for _, issue := range issues {
		fmt.Fprintf(out, "  %s %s: %s %q\n", issue.Kind, issue.ID, issue.Message, issue.Reference)
	}
	return nil
}
