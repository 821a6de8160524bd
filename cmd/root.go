package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/xll-gen/bin2c/internal/config"
	"github.com/xll-gen/bin2c/internal/generator"
	"github.com/xll-gen/bin2c/internal/ui"
	"github.com/xll-gen/bin2c/pkg/log"
	"github.com/xll-gen/bin2c/version"
)

// options holds the raw flag values. Only flags the user actually set are
// applied over the job file, see applyFlags.
type options struct {
	output     string
	blockSize  int
	indent     int
	configPath string
	logLevel   string
	logFile    string
	quiet      bool
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "bin2c [flags] INPUT...",
		Short: "Create a C source and header file out of one or more binaries",
		Long: `bin2c embeds binary files into C code. For every input it declares
<name>_start (the bytes) and <name>_size in a header and defines them in a
matching source file. Without -o each input gets its own OUTPUT.h/OUTPUT.c
pair named after the input path; with -o all inputs share one pair.`,
		Version: version.Version,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.configPath != "" {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runEmbed(cmd.Flags(), opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file basename (default: one output pair per input)")
	f.IntVarP(&opts.blockSize, "block-size", "b", config.DefaultBlockSize, "number of bytes per line")
	f.IntVarP(&opts.indent, "indent", "i", config.IndentTab, "number of spaces to indent (default -1 means \\t)")
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML job file listing output sets")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print generated files")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// runEmbed builds the configuration from the job file and flags, then
// generates every planned output set.
//
// Returns:
//   - error: The first configuration, file access or write failure.
func runEmbed(flags *pflag.FlagSet, opts *options, args []string) error {
	cfg := &config.Config{}
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	config.ApplyDefaults(cfg)
	applyFlags(flags, opts, cfg)
	cfg.Inputs = append(cfg.Inputs, args...)

	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := log.Init(cfg.Logging.Path, cfg.Logging.Level, "run", uuid.NewString()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer log.Close()

	ui.Quiet = opts.quiet

	sets := config.Plan(cfg)
	ui.PrintHeader(fmt.Sprintf("Embedding %d output set(s)", len(sets)))
	slog.Debug("planned output sets", "version", version.Version, "sets", len(sets))
	for _, dup := range config.Duplicates(sets) {
		ui.PrintWarning("overwrite", dup+".h/.c is generated more than once")
		slog.Warn("output set generated more than once", "set", dup)
	}

	format := generator.Format{BlockSize: *cfg.BlockSize, Indent: cfg.IndentString()}
	results, err := generator.Generate(sets, format)
	for _, res := range results {
		ui.PrintSuccess("generated", fmt.Sprintf("%s, %s (%d inputs, %d bytes)", res.Header, res.Source, res.Inputs, res.Bytes))
	}
	if err != nil {
		ui.PrintError("failed", err.Error())
		slog.Error("generation failed", "error", err)
		return err
	}
	return nil
}

// applyFlags copies explicitly set flags over cfg so a job file keeps its
// values unless the command line says otherwise.
func applyFlags(flags *pflag.FlagSet, opts *options, cfg *config.Config) {
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("block-size") {
		n := opts.blockSize
		cfg.BlockSize = &n
	}
	if flags.Changed("indent") {
		n := opts.indent
		cfg.Indent = &n
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.Path = opts.logFile
	}
}
