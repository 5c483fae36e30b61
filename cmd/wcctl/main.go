// Command wcctl validates client configurations and dry-runs mapping rules
// from the command line.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wecelebrate/console/internal/logging"
)

var verbose bool

// exitError ends the process with code after its output has been printed.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

var rootCmd = &cobra.Command{
	Use:           "wcctl",
	Short:         "wecelebrate admin console tools",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			logging.SetLogger(zap.NewNop())
			return nil
		}
		return logging.Init("development", "debug")
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newAssignCmd())
	rootCmd.AddCommand(newAPIKeyCmd())
}

func main() {
	err := rootCmd.Execute()
	_ = logging.Close()
	if err == nil {
		return
	}

	var ee *exitError
	if errors.As(err, &ee) {
		os.Exit(ee.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(2)
}
