package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmerbase/kmertrie/internal/audit"
	"github.com/kmerbase/kmertrie/internal/config"
	"github.com/kmerbase/kmertrie/internal/snapshot"
	"github.com/kmerbase/kmertrie/pkg/trie"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Load the configured snapshot and check every index's scan count against its record count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify()
		},
	}
}

func runVerify() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.SnapshotDir + string(os.PathSeparator) + cfg.SnapshotFile
	indexes, err := snapshot.Load(path)
	if err != nil {
		return err
	}

	ok := true
	for _, idx := range indexes {
		tr := trie.NewTree()
		for _, v := range idx.Values {
			tr.Insert(v)
		}
		report := audit.Verify(idx.Name, tr, len(idx.Values))
		fmt.Println(report.String())
		if !report.OK {
			ok = false
		}
	}

	if !ok {
		return fmt.Errorf("verify: one or more indexes failed to round-trip")
	}
	return nil
}
