// SPDX-License-Identifier: MPL-2.0

//go:build windows

package shell

import (
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

type handleProcess struct {
	handle windows.Handle
}

// OpenURL implements Shell using ShellExecuteEx with the default verb.
func (System) OpenURL(url string) error {
	proc, err := shellExecute(url, "", "")
	if err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	if proc != nil {
		_ = windows.CloseHandle(proc.handle)
	}
	return nil
}

// Start implements Shell using ShellExecuteEx so the browser is started the
// same way Explorer would start it.
func (System) Start(path string, args []string, dir string) (Process, error) {
	escaped := make([]string, len(args))
	for i, arg := range args {
		escaped[i] = windows.EscapeArg(arg)
	}
	proc, err := shellExecute(path, strings.Join(escaped, " "), dir)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", path, err)
	}
	if proc == nil {
		// DDE or an already running instance took the request; nothing to wait for.
		return exitedProcess{}, nil
	}
	return proc, nil
}

func shellExecute(file, params, dir string) (*handleProcess, error) {
	info := &windows.SHELLEXECUTEINFO{
		Mask: windows.SEE_MASK_NOCLOSEPROCESS,
		Show: windows.SW_SHOW,
	}
	info.Size = uint32(unsafe.Sizeof(*info))

	var err error
	if info.File, err = windows.UTF16PtrFromString(file); err != nil {
		return nil, err
	}
	if params != "" {
		if info.Parameters, err = windows.UTF16PtrFromString(params); err != nil {
			return nil, err
		}
	}
	if dir != "" {
		if info.Directory, err = windows.UTF16PtrFromString(dir); err != nil {
			return nil, err
		}
	}

	if err := windows.ShellExecuteEx(info); err != nil {
		return nil, fmt.Errorf("ShellExecuteEx: %w", err)
	}
	if info.Process == 0 {
		return nil, nil
	}
	return &handleProcess{handle: info.Process}, nil
}

// Wait blocks on the process handle with no timeout.
func (p *handleProcess) Wait() (int, error) {
	defer windows.CloseHandle(p.handle)

	if _, err := windows.WaitForSingleObject(p.handle, windows.INFINITE); err != nil {
		return -1, fmt.Errorf("WaitForSingleObject: %w", err)
	}
	var code uint32
	if err := windows.GetExitCodeProcess(p.handle, &code); err != nil {
		return -1, fmt.Errorf("GetExitCodeProcess: %w", err)
	}
	return int(int32(code)), nil
}

type exitedProcess struct{}

func (exitedProcess) Wait() (int, error) { return 0, nil }
