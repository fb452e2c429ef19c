package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/contactform/app/contactform"
)

func fieldsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Print the field registry",
		Long: `Load the field registry and print it as YAML. With --file the file
is checked and printed in normalized form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := contactform.LoadFields(file)
			if err != nil {
				return err
			}
			return registry.WriteYAML(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "field registry file, defaults to the embedded one")

	return cmd
}
