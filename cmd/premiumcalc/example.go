package main

import (
	"github.com/spf13/cobra"

	"github.com/shakaihoken/premium-calculator/internal/config"
)

func newExampleCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example input configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, closeFn, err := openOutput(outPath, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if _, err := w.Write(config.ExampleConfiguration()); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the example to this file instead of stdout")
	return cmd
}
