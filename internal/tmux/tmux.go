// Package tmux opens terminals next to the file manager when it runs
// inside tmux.
package tmux

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Inside reports whether the process runs in a tmux session.
func Inside() bool {
	return os.Getenv("TMUX") != ""
}

// SplitPane creates a new pane in the current window with cwd set to workDir.
// Returns the new pane ID (e.g. %4) or an error.
func SplitPane(workDir string) (paneID string, err error) {
	if info, statErr := os.Stat(workDir); statErr != nil || !info.IsDir() {
		return "", fmt.Errorf("tmux split-window: %s is not a directory", workDir)
	}
	cmd := exec.Command("tmux", "split-window", "-h", "-P", "-F", "#{pane_id}", "-c", workDir)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tmux split-window: %w: %s", err, strings.TrimSpace(out.String()))
	}
	return strings.TrimSpace(out.String()), nil
}

// KillPane kills the pane with the given ID.
func KillPane(paneID string) error {
	cmd := exec.Command("tmux", "kill-pane", "-t", paneID)
	var out bytes.Buffer
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tmux kill-pane: %w: %s", err, strings.TrimSpace(out.String()))
	}
	return nil
}

// Shell returns the user's login shell, defaulting to /bin/sh.
func Shell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}
