/*
Copyright © 2026 The ramuda-sample Authors

*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the functions available for local invocation",
	Run: func(cmd *cobra.Command, args []string) {
		for _, def := range newLocalRegistry().ListFunctions(cmd.Context()) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", def.Name, def.Description)
		}
	},
}
