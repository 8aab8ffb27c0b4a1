package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/serkey/driver"
)

// Report writes err to the command's error stream and returns the process
// exit status. Usage is printed only for configuration errors.
func Report(cmd *cobra.Command, err error) int {
	if err == nil {
		return 0
	}
	var w io.Writer = os.Stderr
	if cmd != nil {
		w = cmd.ErrOrStderr()
	}
	fmt.Fprintf(w, "serkey: %v\n", err)
	if cmd != nil && driver.KindOf(err) == driver.ConfigError {
		fmt.Fprintln(w)
		fmt.Fprint(w, cmd.UsageString())
	}
	return driver.ExitCode(err)
}
