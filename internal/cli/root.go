// Package cli wires the tlsubs command line to the validator and the
// translator.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Belphemur/tlsubs/internal/automation"
	"github.com/Belphemur/tlsubs/internal/config"
	"github.com/Belphemur/tlsubs/internal/metrics"
	"github.com/Belphemur/tlsubs/internal/models"
	"github.com/Belphemur/tlsubs/internal/translator"
	"github.com/Belphemur/tlsubs/internal/validate"
)

const description = "Translate subtitles using https://translatesubtitles.co into any language."

// Deps lets callers replace the browser backend and output streams.
// Zero values select go-rod and the process's stdout/stderr.
type Deps struct {
	Launcher automation.Launcher
	Stdout   io.Writer
	Stderr   io.Writer
}

func (d Deps) withDefaults() Deps {
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}
	return d
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, deps Deps) int {
	deps = deps.withDefaults()
	cmd := NewRootCommand(deps)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
	return 1
}

// NewRootCommand builds the tlsubs command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	deps = deps.withDefaults()
	v := viper.New()

	var outputDir string

	cmd := &cobra.Command{
		Use:           "tlsubs FILE",
		Short:         description,
		Long:          description + "\n\nSupported extensions and languages are listed by 'tlsubs languages'.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			if outputDir == "" {
				if outputDir, err = os.Getwd(); err != nil {
					return fmt.Errorf("failed to determine working directory: %w", err)
				}
			}
			return runTranslate(cmd.Context(), cfg, deps, args[0], outputDir)
		},
	}
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	persistent := cmd.PersistentFlags()
	persistent.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	persistent.String("site-url", config.DefaultSiteURL, "root URL of the translation service")
	persistent.String("proxy", "", "proxy for the browser and HTTP requests")

	flags := cmd.Flags()
	flags.StringVarP(&outputDir, "output-dir", "o", "", "Path to the directory to save the translated file to (default: current directory)")
	flags.StringP("target-lang", "l", config.DefaultTargetLang, "Language to translate the subtitles into")
	flags.Bool("headless", true, "run the browser without a window")
	flags.String("browser-bin", "", "browser executable (default: detected or downloaded by rod)")
	flags.Bool("no-sandbox", false, "disable the Chromium sandbox (needed in some containers)")
	flags.String("metrics-file", "", "write Prometheus textfile metrics to this path")
	flags.String("translate-timeout", config.DefaultTranslateTimeout.String(), "maximum time to wait for the translation to finish")

	bindFlags(v, persistent, map[string]string{
		"log_level":               "log-level",
		"site_url":                "site-url",
		"proxy_connection_string": "proxy",
	})
	bindFlags(v, flags, map[string]string{
		"target_lang":        "target-lang",
		"browser.headless":   "headless",
		"browser.bin":        "browser-bin",
		"browser.no_sandbox": "no-sandbox",
		"metrics.file":       "metrics-file",
		"timeouts.translate": "translate-timeout",
	})

	cmd.AddCommand(newLanguagesCommand(deps))
	cmd.AddCommand(newProbeCommand(deps, v))

	return cmd
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		// Lookup only fails on a typo in the table above
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("cli: binding flag %q: %v", name, err))
		}
	}
}

func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.ConfigureLogging(cfg)
	return cfg, nil
}

func runTranslate(ctx context.Context, cfg *config.Config, deps Deps, filePath, outputDir string) (err error) {
	logger := config.GetLogger()

	flush, serr := initErrorReporting(cfg.SentryDSN)
	if serr != nil {
		logger.Warn().Err(serr).Msg("Error reporting disabled")
	}
	defer flush()

	var job models.Job
	defer func() { reportFailure(sentry.CurrentHub(), err, job) }()

	job, err = validate.Validate(filePath, outputDir, cfg.TargetLang)
	if err != nil {
		return err
	}

	launcher := deps.Launcher
	if launcher == nil {
		launcher = automation.NewRodLauncher(rodOptions(cfg))
	}

	result, err := translator.New(launcher, cfg.SiteURL, cfg.StepTimeouts()).Translate(ctx, job)

	if cfg.Metrics.File != "" {
		if werr := metrics.WriteTextfile(cfg.Metrics.File); werr != nil {
			logger.Warn().Err(werr).Str("path", cfg.Metrics.File).Msg("Failed to write metrics file")
		}
	}

	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(deps.Stdout, result.OutputPath)
	return nil
}

func rodOptions(cfg *config.Config) automation.RodOptions {
	return automation.RodOptions{
		Bin:       cfg.Browser.Bin,
		Headless:  cfg.Browser.Headless,
		NoSandbox: cfg.Browser.NoSandbox,
		Proxy:     cfg.ProxyConnectionString,
		UserAgent: cfg.UserAgent,
	}
}
