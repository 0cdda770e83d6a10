package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Belphemur/tlsubs/internal/format"
	"github.com/Belphemur/tlsubs/internal/languages"
)

func newLanguagesCommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported target languages and subtitle extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := deps.Stdout
			_, _ = fmt.Fprintf(out, "Supported file extensions:\n%s\n\nSupported target languages:\n", format.List(languages.Extensions(), format.DefaultWidth))

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, code := range languages.Languages() {
				_, _ = fmt.Fprintf(tw, "  %s\t%s\n", code, languages.Name(code))
			}
			return tw.Flush()
		},
	}
}
