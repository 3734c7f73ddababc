package main

import (
	"fmt"
	"os"

	"github.com/avivsinai/inboxview/internal/cli"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && isVersionArg(os.Args[1]) {
		if _, err := fmt.Fprintln(os.Stdout, version); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	err := cli.Run(os.Args[1:])
	if err == nil {
		return
	}
	code := cli.GetExitCode(err)
	out := os.Stderr
	if code == cli.ExitSuccess {
		// No export, no match, index out of range: informational, not a failure.
		out = os.Stdout
	}
	if _, werr := fmt.Fprintln(out, err); werr != nil {
		os.Exit(1)
	}
	os.Exit(code)
}

func isVersionArg(arg string) bool {
	switch arg {
	case "--version", "-version", "version":
		return true
	default:
		return false
	}
}
