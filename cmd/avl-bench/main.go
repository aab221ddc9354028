package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cosmos/avl-bench/bench"
	"github.com/cosmos/avl-bench/internal/logz"
)

func rootCommand() (*cobra.Command, error) {
	var (
		logLevel string
		logFile  string
		logJSON  bool
		file     *os.File
	)
	root := &cobra.Command{
		Use:           "avl-bench",
		Short:         "Exercise and benchmark a value-ordered AVL tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := logz.Options{Level: logLevel, JSON: logJSON}
			if logFile != "" {
				var err error
				file, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				opts.File = file
			}
			if err := logz.Setup(opts); err != nil {
				if file != nil {
					file.Close()
				}
				return err
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if file != nil {
				return file.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn or error")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "also append JSON log lines to this file")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write JSON instead of console logs to stderr")
	return root, nil
}

func main() {
	root, err := rootCommand()
	if err != nil {
		os.Exit(1)
	}
	root.AddCommand(bench.Commands()...)

	if err := root.Execute(); err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		os.Exit(1)
	}
}
