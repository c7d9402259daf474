package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	log     = logrus.New()
	verbose bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "jsondelta",
		Short:         "Compute, apply, and transform structural JSON diffs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug detail to stderr")

	cmd.AddCommand(newDiffCmd())
	cmd.AddCommand(newPatchCmd())
	cmd.AddCommand(newTransformCmd())
	return cmd
}

func main() {
	log.SetOutput(os.Stderr)
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("jsondelta failed")
		os.Exit(1)
	}
}
