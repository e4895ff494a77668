package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/memimg"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of memimg",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("memimg version %s\n", strings.TrimSpace(memimg.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
