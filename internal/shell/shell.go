// SPDX-License-Identifier: MPL-2.0

// Package shell starts processes and hands URLs to the operating system's
// default handler.
package shell

type (
	// Process is a started child process.
	Process interface {
		// Wait blocks until the process exits and returns its exit status.
		// There is no timeout.
		Wait() (int, error)
	}

	// Shell is the process launch capability.
	Shell interface {
		// OpenURL asks the OS to open url with its default handler and
		// returns without waiting.
		OpenURL(url string) error
		// Start launches path with args, using dir as the working directory.
		Start(path string, args []string, dir string) (Process, error)
	}

	// System is the Shell backed by the real operating system.
	System struct{}
)
