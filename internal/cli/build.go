package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/nekoprog/DocXaur/pkg/docxaur"
)

func newBuildCmd() *cobra.Command {
	var output string
	var strict bool
	var baseDir string

	cmd := &cobra.Command{
		Use:   "build <spec.toml>",
		Short: "Assemble a DOCX package from a TOML document description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			start := time.Now()

			spec, err := LoadSpec(args[0])
			if err != nil {
				return err
			}

			cfg := docxaur.ConfigFromEnvironment()
			cfg.StrictDimensions = cfg.StrictDimensions || strict
			if baseDir != "" {
				cfg.BaseDir = baseDir
			}

			doc, err := BuildDocument(spec,
				docxaur.WithConfig(cfg),
				docxaur.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			if err := doc.SaveFile(output); err != nil {
				return err
			}
			logger.Infof("Wrote %s (%s)", output, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "out.docx", "output package path")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on unparsable dimension strings")
	cmd.Flags().StringVar(&baseDir, "base-dir", "", "directory root-relative image locators resolve against")
	return cmd
}
