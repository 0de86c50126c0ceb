package main

import (
	"context"
	"fmt"
	"io"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/andrewstucki/shortcut/internal/config"
	"github.com/andrewstucki/shortcut/internal/logger"
	"github.com/andrewstucki/shortcut/internal/metrics"
	"github.com/andrewstucki/shortcut/internal/report"
	"github.com/andrewstucki/shortcut/lnk"
)

const version = "0.1.0"

// flag name -> configuration key
var flagKeys = map[string]string{
	"format":       config.KeyFormat,
	"full":         config.KeyFull,
	"debug":        config.KeyDebug,
	"log-format":   config.KeyLogFormat,
	"raw-strings":  config.KeyRawStrings,
	"codepage":     config.KeyCodePage,
	"workers":      config.KeyWorkers,
	"metrics-file": config.KeyMetricsFile,
	"command-only": config.KeyCommandOnly,
}

func newRootCommand() *cobra.Command {
	var cfgFile string
	v := config.New()

	cmd := &cobra.Command{
		Use:   "shortcut [file|directory]...",
		Short: "Decode Windows shell link (.lnk) files",
		Long: `shortcut decodes Windows shell link (.lnk) files and prints their
header, link target, location information, string data and extra data
blocks. Directories are scanned recursively and files that are not shell
links are skipped.

Settings are read from flags, SHORTCUT_* environment variables and an
optional shortcut.yaml config file, in that order of precedence.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			log, err := logger.New(logger.Config{
				Debug:     cfg.Debug,
				LogFormat: cfg.LogFormat,
			})
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if cfg.File != "" {
				log.Debug("loaded config file", zap.String("config_file", cfg.File))
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, log, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is shortcut.yaml in the working or user config directory)")
	flags.StringP("format", "f", v.GetString(config.KeyFormat), "Output format: json, yaml or table")
	flags.Bool("full", false, "Include sizes, offsets, raw values and contained decoding errors")
	flags.Bool("debug", false, "Enable debug logging and error stacks")
	flags.String("log-format", v.GetString(config.KeyLogFormat), "Log format: json or human")
	flags.Bool("raw-strings", false, "Keep strings as stored instead of reducing them to printable ASCII")
	flags.Int("codepage", 0, "Code page for 8-bit strings when --raw-strings is set (default 1252)")
	flags.IntP("workers", "w", v.GetInt(config.KeyWorkers), "Number of files decoded concurrently")
	flags.String("metrics-file", "", "Write Prometheus metrics for the run to this file")
	flags.Bool("command-only", false, "Print only the effective command line of each link")
	bindFlags(v, cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shortcut v%s\n", version)
		},
	})
	return cmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	for name, key := range flagKeys {
		// only fails for a nil flag
		if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func decodeOptions(cfg config.Config) []lnk.Option {
	var opts []lnk.Option
	if cfg.RawStrings {
		opts = append(opts, lnk.WithRawStrings())
	}
	if cfg.CodePage != 0 {
		opts = append(opts, lnk.WithCodePage(cfg.CodePage))
	}
	return opts
}

func run(ctx context.Context, out, errOut io.Writer, cfg config.Config, log *zap.Logger, paths []string) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.MetricsFile != "" {
		m = metrics.New()
	}

	names, err := collect(paths)
	if err != nil {
		return err
	}

	s := &scanner{workers: cfg.Workers, log: log, opts: decodeOptions(cfg)}
	files, err := s.scan(ctx, names)
	if err != nil {
		return err
	}

	fidelity := lnk.ParseFidelity(cfg.Full)
	docs := make([]report.Document, 0, len(files))
	failed := 0
	for _, f := range files {
		if f.Err != nil {
			failed++
			m.RecordFile(metrics.ResultFailed)
			log.Error("unable to decode file", zap.String("file", f.Name), zap.Error(f.Err))
			var wrapped *errors.Error
			if cfg.Debug && errors.As(f.Err, &wrapped) {
				fmt.Fprintln(errOut, wrapped.ErrorStack())
			}
			continue
		}
		if !f.Info.IsShortcut() {
			m.RecordFile(metrics.ResultSkipped)
			log.Debug("skipping file", zap.String("file", f.Name), zap.String("mime", f.Info.MIME))
			continue
		}
		m.RecordShortcut(f.Info.LNK)

		doc := report.Document{Name: f.Name}
		if cfg.CommandOnly {
			doc.Report = map[string]interface{}{"command": f.Info.LNK.Command()}
		} else {
			doc.Report = f.Info.Report(fidelity)
		}
		docs = append(docs, doc)
	}

	if err := report.NewPrinter(out, format).Print(docs); err != nil {
		return err
	}
	if err := m.WriteToTextfile(cfg.MetricsFile); err != nil {
		return errors.Wrap(err, 0)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be decoded", failed, len(files))
	}
	return nil
}
