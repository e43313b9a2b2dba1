package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"adsbuilder/internal/domain/build"
	"adsbuilder/internal/domain/bulkcsv"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <build.json>",
		Short: "Convert a saved build into a bulk upload CSV",
		Long: `Read a build saved as JSON and write the bulk upload CSV for it.
Without --output the file is named after the build's client, e.g.
google_ads_acme_upload.csv. Use --output - to write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			logger := GetLogger(cmd.Context())

			b, err := readBuildFile(args[0], cfg.Limits)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := bulkcsv.WriteTo(cmd.OutOrStdout(), b)
				return err
			}
			if output == "" {
				output = build.CSVFileName(b)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()

			n, err := bulkcsv.WriteTo(f, b)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			logger.Debug("export written", zap.String("file", output), zap.Int64("bytes", n))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d rows)\n", output, len(bulkcsv.Records(b)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (- for stdout)")
	return cmd
}

func readBuildFile(path string, limits build.Limits) (*build.Build, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	b, err := build.Decode(data, limits)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
