package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Belphemur/tlsubs/internal/probe"
)

var errProbeFailed = errors.New("the site no longer exposes every element tlsubs relies on")

func newProbeCommand(deps Deps, v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check that the translation site still serves the expected markup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			report, err := probe.NewProber(cfg, cfg.StepTimeouts().Navigate).Probe(cmd.Context(), cfg.SiteURL)
			if err != nil {
				return err
			}

			for _, res := range report.Results {
				status := "ok"
				switch {
				case !res.Checked:
					status = "dynamic"
				case !res.Found:
					status = "MISSING"
				}
				_, _ = fmt.Fprintf(deps.Stdout, "%-8s %-18s %s\n", status, res.Marker.Name, res.Marker.Value)
			}

			if !report.OK() {
				return errProbeFailed
			}
			return nil
		},
	}
}
