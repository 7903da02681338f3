package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mediascope",
	Short: "A CLI for managing the MediaScope services",
	Long:  `MediaScope digitizes scanned newspapers and serves search and aggregate analytics over the resulting archive.`,
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
