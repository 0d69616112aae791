// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/pwalaunch/pwalaunch/internal/issue"
)

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their own Format; verbose mode shows the full cause chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderFailure writes err to w and, in verbose mode, the remediation page
// for its issue class.
func renderFailure(w io.Writer, err error, verbose bool) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	if !verbose {
		return
	}

	entry := issue.For(err)
	if entry == nil {
		return
	}
	rendered, rerr := entry.Render("dark")
	if rerr != nil {
		fmt.Fprintln(w, entry.Markdown())
		return
	}
	fmt.Fprint(w, rendered)
}
