package main

import (
	"os"

	"github.com/harrison/rsearch/internal/cmd"
	"github.com/harrison/rsearch/internal/display"
)

// Version is the current version of the rsearch application
const Version = "0.2.0"

func main() {
	if cmd.Version == "dev" {
		cmd.Version = Version
	}
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		display.Error(os.Stdout, err.Error())
		os.Exit(1)
	}
}
