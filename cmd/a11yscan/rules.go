package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a11yscan/engine/finding"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the finding-kind catalogue",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every finding kind this analyzer can emit",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, kind := range finding.AllKinds() {
			fmt.Fprintln(cmd.OutOrStdout(), kind)
		}
		return nil
	},
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
}
