// ABOUTME: Root command for the ragctl operator CLI
// ABOUTME: Registers subcommands and global flags
package commands

import (
	"github.com/spf13/cobra"
)

var envName string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ragctl",
		Short: "Operate tenant corpora for the tutoring backend",
		Long: `ragctl manages the per-tenant retrieval corpora of the tutoring
backend: listing tenants with their ingestion status and rebuilding a
tenant's chunk store, embeddings and vector index from its documents.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&envName, "env", "local", "Environment to run (local, prod, or custom)")

	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewIngestCmd())

	return cmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}
