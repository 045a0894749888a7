package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"solflat.dev/pkg/solflat/internal/adapter"
	"solflat.dev/pkg/solflat/internal/domain"
	m "solflat.dev/pkg/solflat/internal/model"
)

const buildLongDescription = `Flatten each entry file, apply constant overrides, compile the result
and write one artifact per entry into the output directory.

Entries are built independently; a failing entry does not stop the others.
Compiler errors are reported against the original files.

Constant overrides come from the constants file (a flat YAML mapping) and
from repeated -D NAME=VALUE flags, which win.`

var buildOutDirFlag string
var buildFormatFlag string
var buildParallelFlag int
var buildDefineFlags []string

// buildCmd represents the build command.
var buildCmd = newBuildCmd()

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <entries...>",
		Short: "Compile entry files into artifacts",
		Long:  buildLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := adapter.ParseArtifactFormat(viper.GetString(buildFormatKey))
			if err != nil {
				return err
			}

			constants, err := loadConstants(viper.GetString(constantsFileKey), buildDefineFlags)
			if err != nil {
				return err
			}

			return workflowFactory().Build(cmd.Context(), domain.BuildArgs{
				Entries:   parsePaths(args),
				OutDir:    m.Path(viper.GetString(buildOutDirKey)),
				Format:    format,
				Constants: constants,
				Threads:   viper.GetInt(buildParallelKey),
			})
		},
	}

	configureBuildFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func configureBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&buildOutDirFlag, outDirFlagName, "o", defaultBuildOutDir, "directory artifacts are written to")
	bindFlagToConfig(cmd.Flags().Lookup(outDirFlagName), buildOutDirKey)

	cmd.Flags().StringVarP(&buildFormatFlag, formatFlagName, "f", defaultBuildFormat, "artifact format: js or yaml")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), buildFormatKey)

	cmd.Flags().IntVarP(&buildParallelFlag, parallelFlagName, "p", defaultBuildParallel, "number of entries built in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), buildParallelKey)


	cmd.Flags().StringArrayVarP(&buildDefineFlags, defineFlagName, "D", nil, "constant override NAME=VALUE (can be repeated)")
}
