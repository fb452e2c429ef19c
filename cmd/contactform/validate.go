package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/contactform/app/contactform"
	"github.com/dmitrymomot/contactform/core/i18n"
	"github.com/dmitrymomot/contactform/core/validator"
)

var errInvalidValue = errors.New("invalid value")

func validateCmd() *cobra.Command {
	var (
		lang   string
		fields string
	)

	cmd := &cobra.Command{
		Use:   "validate <field> <value>",
		Short: "Validate a value against a field of the registry",
		Example: `  contactform validate email jane@example.com
  contactform validate name J --lang fr`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := contactform.NewResolver(nil)
			if err != nil {
				return err
			}
			registry, err := contactform.LoadFields(fields)
			if err != nil {
				return err
			}

			desc, ok := registry.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown field %q", args[0])
			}

			res := validator.Check(desc, args[1])
			if res.Valid() {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}

			msg := res.Localize(i18n.NewTranslator(resolver, i18n.Fixed(lang)))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", res.Field, msg)
			return fmt.Errorf("%w: %s", errInvalidValue, res.Key)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", contactform.DefaultLanguage, "language of the error message")
	cmd.Flags().StringVar(&fields, "fields", "", "field registry file, defaults to the embedded one")

	return cmd
}
