// ABOUTME: CLI command to list configured tenants
// ABOUTME: Shows each tenant with its ingestion status and document files
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/edurag/tutor-backend/internal/builder"
	"github.com/spf13/cobra"
)

var listFiles bool

// NewListCmd creates list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tenants and their ingestion status",
		Long: `List the configured tenants together with their ingestion status.

A tenant is ingested when its vector index has been persisted.

Examples:
  ragctl list
  ragctl list --files`,
		RunE: runList,
	}

	cmd.Flags().BoolVar(&listFiles, "files", false, "Also list each tenant's document files")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	deps, _, logger, err := builder.BuildDependencies(envName)
	if err != nil {
		return err
	}
	defer logger.Sync()

	statuses := deps.RetrievalUsecase().Status()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tDOCUMENTS DIR")
	for _, s := range statuses {
		status := "not ingested"
		if s.IsSetup {
			status = "ingested"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Tenant.ID, s.Tenant.Name, status, s.Tenant.DocumentsDir)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !listFiles {
		return nil
	}

	for _, s := range statuses {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", s.Tenant.ID)
		entries, err := os.ReadDir(s.Tenant.DocumentsDir)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  no documents directory\n")
			continue
		}
		found := false
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", filepath.Base(entry.Name()))
			found = true
		}
		if !found {
			fmt.Fprintf(cmd.OutOrStdout(), "  no documents added yet\n")
		}
	}
	return nil
}
