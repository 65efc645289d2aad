package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nekoprog/DocXaur/pkg/docxaur"
)

func newInspectCmd() *cobra.Command {
	var showRels bool

	cmd := &cobra.Command{
		Use:   "inspect <file.docx>",
		Short: "List the parts and relationships of an existing package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := docxaur.PackageReaderFromFile(args[0])
			if err != nil {
				return err
			}

			for _, part := range reader.ListParts() {
				fmt.Fprintln(cmd.OutOrStdout(), part)
			}

			if showRels {
				rels, err := reader.DocumentRelationships()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout())
				for _, rel := range rels {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", rel.ID, rel.Target)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showRels, "rels", false, "also print the document relationship manifest")
	return cmd
}
