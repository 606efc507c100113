// ABOUTME: CLI command to rebuild a tenant's retrieval corpus
// ABOUTME: Runs the full chunk/embed/index pipeline and reports the result
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edurag/tutor-backend/internal/builder"
)

// NewIngestCmd creates ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <tenant-id>",
		Short: "Rebuild a tenant's retrieval corpus from its documents",
		Long: `Rebuild a tenant's retrieval corpus: extract text from the documents
in the tenant's documents directory, chunk it, embed every chunk and persist
the chunk store, embeddings and vector index as one atomic replacement.

Re-running fully replaces the previous corpus.

Examples:
  ragctl ingest 7th
  ragctl --env prod ingest 10th`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	tenantID := args[0]

	deps, _, logger, err := builder.BuildDependencies(envName)
	if err != nil {
		return err
	}
	defer logger.Sync()

	report, err := deps.IngestUsecase().Ingest(cmd.Context(), tenantID)
	if err != nil {
		return fmt.Errorf("ingesting tenant %s: %w", tenantID, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ingested tenant %s (run %s)\n", report.TenantID, report.RunID)
	fmt.Fprintf(cmd.OutOrStdout(), "  documents: %d\n", report.DocumentCount)
	fmt.Fprintf(cmd.OutOrStdout(), "  chunks:    %d\n", report.ChunkCount)
	fmt.Fprintf(cmd.OutOrStdout(), "  dimension: %d\n", report.Dimension)
	return nil
}
