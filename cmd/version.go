package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of cyspec",
		Long:  `All software has versions. This is cyspec's.`,
		Run: func(cmd *cobra.Command, args []string) {
			// rootCmd.Version is set by main through SetVersion
			fmt.Fprintf(cmd.OutOrStdout(), "cyspec version %s\n", rootCmd.Version)
		},
	}
}
