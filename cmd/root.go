// Package cmd provides the root command and CLI setup for solflat.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"solflat.dev/pkg/solflat/internal/adapter"
	"solflat.dev/pkg/solflat/internal/controller"
	"solflat.dev/pkg/solflat/internal/domain"
	m "solflat.dev/pkg/solflat/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var artifactStore adapter.ArtifactStore
var ui controller.UI

// workflowFactory builds the workflow from the effective configuration. Tests swap it
// for one returning a mock.
var workflowFactory = newWorkflow

// verboseFlag forces debug logging.
var verboseFlag bool

// logFileFlag overrides log.filename.
var logFileFlag string

// noCacheFlag disables the build cache when set.
var noCacheFlag bool

// compilerFlag overrides compiler.path.
var compilerFlag string

// constantsFlag overrides constants.file.
var constantsFlag string

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	artifactStore = adapter.NewLocalArtifactStore(fsAdapter)
}

const rootLongDescription = `Solflat flattens a contract source tree into a single compilation unit,
injects constant overrides, runs the external compiler on it and maps compiler
errors back to the original files.

Imports are resolved relative to the importing file. Every unit appears once
in the flattened text, after the units it depends on.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "solflat",
		Short:         "Flatten, configure and compile contract sources",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVar(&noCacheFlag, noCacheFlagName, defaultNoCache, "disable the build cache (always run the compiler)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noCacheFlagName), noCacheFlagName)

	cmd.PersistentFlags().StringVar(&compilerFlag, compilerFlagName, defaultCompilerPath, "compiler executable")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(compilerFlagName), compilerPathKey)

	cmd.PersistentFlags().StringVarP(&constantsFlag, constantsFlagName, "c", defaultConstantsFile, "YAML file of constant overrides")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(constantsFlagName), constantsFileKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// newWorkflow wires the pipeline stages from the effective configuration.
func newWorkflow() domain.Workflow {
	binary := viper.GetString(compilerPathKey)
	optimize := viper.GetBool(compilerOptimizeKey)
	timeout := time.Duration(viper.GetInt64(compilerTimeoutKey)) * time.Second

	compiler := adapter.NewLocalCompilerAdapter(binary, timeout)
	invoker := domain.NewInvoker(compiler, optimize)

	if !viper.GetBool(noCacheFlagName) {
		cache := adapter.NewLocalBuildCache(fsAdapter, m.Path(viper.GetString(cacheDirKey)))
		invoker = domain.NewCachingInvoker(invoker, cache, compiler, optimize)
	}

	return domain.NewWorkflow(
		fsAdapter,
		artifactStore,
		ui,
		domain.NewResolver(fsAdapter),
		domain.NewInjector(),
		invoker,
		domain.NewRemapper(),
	)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
