// Copyright © 2026 Lakeland Data

package cmd

import (
	"fmt"
	"os"
)

// exit codes: 0 success, 1 failure, 2 user declined a confirmation
const (
	exitCodeError    = 1
	exitCodeDeclined = 2
)

func wrapFatalln(msg string, err error) {
	if err == nil {
		logFatalln(msg)
	} else {
		logFatalf("%v", fmt.Errorf(msg+": %w", err))
	}
}

func wrapFatalWithCodef(code int, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	osExit(code)
}
