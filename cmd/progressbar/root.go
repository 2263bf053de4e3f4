package main

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NovikovRoman/ProgressBarCLI/internal/config"
	"github.com/NovikovRoman/ProgressBarCLI/internal/logging"
)

const defaultConfigFile = "progressbar.yaml"

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configFile string
	logLevel   string
	logFormat  string
	width      int
	format     string
	plain      bool
	sets       []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "progressbar",
		Short: "Copy objects with a single-line progress display",
		Long: `progressbar copies objects between blob buckets (file://, mem://, gs://, s3://)
and downloads HTTP sources into buckets, redrawing one progress line per chunk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withCode(ExitInvalidArgs, err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML config file (default ./"+defaultConfigFile+" if present)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error or none")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")
	flags.IntVar(&opts.width, "width", 0, "progress line width in columns")
	flags.StringVar(&opts.format, "format", "", "progress line template, e.g. '#current#/#max# [#bar#] #percent# #eta#'")
	flags.BoolVar(&opts.plain, "plain", false, "disable cursor and color escape sequences")
	flags.StringArrayVar(&opts.sets, "set", nil, "set a style field, as field=value (repeatable)")

	cmd.AddCommand(
		newCopyCmd(opts),
		newFetchCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load layers the configuration: defaults, file, environment, flags and
// finally --set assignments. The result is validated and applied to the
// process-wide logger, which writes to the command's stderr.
func (o *rootOptions) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	path, explicit := o.configFile, o.configFile != ""
	if !explicit {
		path = defaultConfigFile
	}
	loaded, err := config.LoadFromFile(path)
	switch {
	case err == nil:
		cfg = loaded
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return cfg, invalidArgs("%w", err)
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return cfg, invalidArgs("%w", err)
	}

	cfg = cfg.Merge(config.Config{
		Width:  o.width,
		Format: o.format,
		Plain:  o.plain,
		Log: config.LogConfig{
			Level:  o.logLevel,
			Format: o.logFormat,
		},
	})

	if err := o.applySets(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, invalidArgs("%w", err)
	}
	logging.SetOutput(cmd.ErrOrStderr())
	if err := cfg.Apply(); err != nil {
		return cfg, invalidArgs("%w", err)
	}

	logging.Component("cli").WithFields(logging.Fields{
		"width":      cfg.Width,
		"chunk_size": cfg.ChunkSize,
		"plain":      cfg.Plain,
	}).Debug("configuration loaded")
	return cfg, nil
}

func (o *rootOptions) applySets(cfg *config.Config) error {
	if len(o.sets) == 0 {
		return nil
	}
	style, err := cfg.Style()
	if err != nil {
		return invalidArgs("%w", err)
	}
	for _, kv := range o.sets {
		field, value, ok := strings.Cut(kv, "=")
		if !ok {
			return invalidArgs("--set %q: expected field=value", kv)
		}
		if err := style.Set(field, value); err != nil {
			return invalidArgs("--set: %w", err)
		}
	}
	cfg.Format = style.Format
	cfg.DoneChar = string(style.Done)
	cfg.CursorChar = string(style.Cursor)
	cfg.RemainingChar = string(style.Remaining)
	return nil
}

func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if f := cmd.Flags().Lookup(name); f != nil && f.Value.String() == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return invalidArgs("%s required", strings.Join(missing, ", "))
	}
	return nil
}
