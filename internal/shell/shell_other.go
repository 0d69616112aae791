// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package shell

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/pwalaunch/pwalaunch/pkg/platform"
)

type execProcess struct {
	cmd *exec.Cmd
}

// OpenURL implements Shell with the desktop's URL opener.
func (System) OpenURL(url string) error {
	opener := "xdg-open"
	if runtime.GOOS == platform.Darwin {
		opener = "open"
	}
	cmd := exec.Command(opener, url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return cmd.Process.Release()
}

// Start implements Shell with os/exec.
func (System) Start(path string, args []string, dir string) (Process, error) {
	cmd := exec.Command(path, args...)
	cmd.Dir = dir
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", path, err)
	}
	return &execProcess{cmd: cmd}, nil
}

// Wait blocks until the child exits.
func (p *execProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
