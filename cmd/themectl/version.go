package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salihkiraz/lumen-theme/version"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Println(version.Version)
				return
			}

			info := version.Get()
			fmt.Printf("themectl %s\n", info.Version)
			fmt.Printf("  commit:     %s\n", info.Commit)
			fmt.Printf("  built:      %s\n", info.BuildTime)
			fmt.Printf("  go version: %s\n", info.GoVersion)
			fmt.Printf("  os/arch:    %s/%s\n", info.OS, info.Arch)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")

	return cmd
}
