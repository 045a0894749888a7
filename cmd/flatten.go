package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"solflat.dev/pkg/solflat/internal/domain"
	m "solflat.dev/pkg/solflat/internal/model"
)

const flattenLongDescription = `Print the flattened text of an entry file with constant overrides applied,
exactly as it would be handed to the compiler.

With --diff only the changes made by the constant overrides are shown.`

var flattenOutputFlag string
var flattenDiffFlag bool
var flattenDefineFlags []string

// flattenCmd represents the flatten command.
var flattenCmd = newFlattenCmd()

func newFlattenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flatten <entry>",
		Short: "Print the flattened source of an entry file",
		Long:  flattenLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			constants, err := loadConstants(viper.GetString(constantsFileKey), flattenDefineFlags)
			if err != nil {
				return err
			}

			return workflowFactory().Flatten(cmd.Context(), domain.FlattenArgs{
				Entry:     m.Path(args[0]),
				Constants: constants,
				Output:    m.Path(flattenOutputFlag),
				ShowDiff:  flattenDiffFlag,
			})
		},
	}

	configureFlattenFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(flattenCmd)
}

func configureFlattenFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flattenOutputFlag, outputFlagName, "o", "", "write the flattened text to this file instead of stdout")
	cmd.Flags().BoolVar(&flattenDiffFlag, diffFlagName, false, "show only the changes made by constant overrides")


	cmd.Flags().StringArrayVarP(&flattenDefineFlags, defineFlagName, "D", nil, "constant override NAME=VALUE (can be repeated)")
}
