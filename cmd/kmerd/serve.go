package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kmerbase/kmertrie/internal/config"
	"github.com/kmerbase/kmertrie/internal/kmerdb"
)

func init() {
	rootCmd.AddCommand(newServeCmd())
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the kmerd server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	srv, err := kmerdb.NewServer(cfg, log)
	if err != nil {
		return err
	}

	snapshotPath := cfg.SnapshotDir + string(os.PathSeparator) + cfg.SnapshotFile
	if err := srv.LoadSnapshot(snapshotPath); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Info("shutting down, flushing snapshot")
		if err := srv.Dump(snapshotPath); err != nil {
			log.WithError(err).Error("snapshot flush failed")
		}
		return srv.Close()
	}
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}
