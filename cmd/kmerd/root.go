// Command kmerd serves a catalog of DNA k-mer radix-trie indexes over a
// RESP-based protocol. Ground truth: app/main.go's flag-parsed entrypoint,
// generalized into a spf13/cobra command tree the way
// joshuapare-hivekit/cmd/hivectl structures its own subcommands (one file
// per subcommand, a shared rootCmd registered via init()).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:     "kmerd",
	Short:   "A radix-trie index server for DNA k-mers",
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
