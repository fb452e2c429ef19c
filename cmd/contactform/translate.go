package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/contactform/app/contactform"
	"github.com/dmitrymomot/contactform/core/i18n"
)

func translateCmd() *cobra.Command {
	var (
		lang   string
		params []string
	)

	cmd := &cobra.Command{
		Use:   "translate <key>",
		Short: "Resolve a message key",
		Long: `Resolve a message key in a language, falling back to the default
language and then to the key itself.`,
		Example: `  contactform translate form.title --lang de
  contactform translate form.error.minLength --param min=2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := contactform.NewResolver(nil)
			if err != nil {
				return err
			}

			placeholders := make(i18n.M, len(params))
			for _, p := range params {
				k, v, ok := strings.Cut(p, "=")
				if !ok || k == "" {
					return fmt.Errorf("invalid param %q, want key=value", p)
				}
				placeholders[k] = v
			}

			fmt.Fprintln(cmd.OutOrStdout(), resolver.T(lang, args[0], placeholders))
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", contactform.DefaultLanguage, "language code")
	cmd.Flags().StringArrayVar(&params, "param", nil, "placeholder as key=value, repeatable")

	return cmd
}
