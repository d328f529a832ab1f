package report

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Open opens path with the platform's default handler and does not wait.
// The handler is reaped in the background so watch mode leaves no zombies.
func Open(path string) error {
	cmd, err := openCommand(runtime.GOOS, path)
	if err != nil {
		return err
	}
	if _, err := start(cmd); err != nil {
		return fmt.Errorf("report: open %s: %w", path, err)
	}
	return nil
}

// start runs cmd without blocking. The returned channel receives the exit
// error once the process has been reaped.
func start(cmd *exec.Cmd) (<-chan error, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	return done, nil
}

// OpenFolder opens the directory containing path.
func OpenFolder(path string) error {
	return Open(filepath.Dir(path))
}

func openCommand(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case "windows":
		// explorer takes files and folders
		return exec.Command("explorer", path), nil
	case "darwin":
		return exec.Command("open", path), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", path), nil
	}
	return nil, fmt.Errorf("report: unsupported platform: %s", goos)
}
