package frameseq

import (
	"io"
	"path/filepath"

	"github.com/arthur-debert/frameseq/internal/version"
	"github.com/arthur-debert/frameseq/pkg/binding"
	"github.com/arthur-debert/frameseq/pkg/config"
	"github.com/arthur-debert/frameseq/pkg/errors"
	"github.com/arthur-debert/frameseq/pkg/filesystem"
	"github.com/arthur-debert/frameseq/pkg/logging"
	"github.com/arthur-debert/frameseq/pkg/output"
	"github.com/arthur-debert/frameseq/pkg/paths"
	"github.com/arthur-debert/frameseq/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app is what every command shares once the root pre-run has loaded
// configuration
type app struct {
	cfg      *config.Config
	paths    paths.Paths
	fs       types.FS
	store    *binding.Store
	renderer *output.Renderer
	logger   zerolog.Logger
}

type globalFlags struct {
	verbosity   int
	format      string
	configFile  string
	bindingFile string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *app) {
	var flags globalFlags
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "frameseq",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.SetVersionTemplate(MsgVersionTemplate)

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&flags.format, "format", "", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&flags.bindingFile, "binding", "", MsgFlagBinding)

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newResequenceCmd(a))
	rootCmd.AddCommand(newBindCmd(a))
	rootCmd.AddCommand(newRefreshCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newGuideCmd(a))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd, a
}

// init loads configuration and builds the shared services
func (a *app) init(cmd *cobra.Command, flags globalFlags) error {
	logging.SetupLogger(flags.verbosity, false)

	overrides := map[string]interface{}{}
	if flags.format != "" {
		overrides["output.format"] = flags.format
	}

	cfg, err := config.Load(config.LoadOptions{ConfigFile: flags.configFile, Overrides: overrides})
	if err != nil {
		return err
	}
	if cfg.Logging.File {
		logging.SetupLogger(flags.verbosity, true)
	}
	a.cfg = cfg
	a.logger = logging.GetLogger("cmd." + cmd.Name())

	p, err := paths.New(cfg.Project.Root)
	if err != nil {
		return err
	}
	a.paths = p

	bindingFile := p.BindingFilePath()
	if flags.bindingFile != "" {
		if bindingFile, err = filepath.Abs(paths.ExpandHome(flags.bindingFile)); err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput, "invalid binding file path")
		}
	}

	a.fs = filesystem.NewOS()
	a.store = binding.NewStore(a.fs, bindingFile)

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid output format")
	}
	if cfg.Output.NoColor && format != output.FormatJSON {
		format = output.FormatText
	}
	a.renderer = output.NewRenderer(cmd.OutOrStdout(), format)

	a.logger.Debug().
		Strs("sources", cfg.Sources).
		Str("binding", bindingFile).
		Str("format", a.renderer.Format().String()).
		Msg("Command started")
	return nil
}

// absDir resolves a directory argument, defaulting to the project root
func (a *app) absDir(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return a.paths.ProjectRoot(), nil
	}
	return a.paths.NormalizePath(args[0])
}

// Run executes the CLI and returns the process exit code
func Run(args []string, stdout, stderr io.Writer) int {
	rootCmd, a := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	// JSON errors belong with the JSON result on stdout
	renderer := output.NewRenderer(stderr, output.FormatText)
	if a.renderer != nil {
		if a.renderer.Format() == output.FormatJSON {
			renderer = a.renderer
		} else {
			renderer = output.NewRenderer(stderr, a.renderer.Format())
		}
	}
	_ = renderer.RenderError(err)
	return 1
}
