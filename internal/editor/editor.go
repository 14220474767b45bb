// Package editor opens prompt content in the user's configured editor.
package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Launch is a prepared editor process.
type Launch struct {
	Cmd *exec.Cmd
}

// Command builds the command that edits path with the named editor. The
// "custom" editor runs $VISUAL or $EDITOR.
func Command(ctx context.Context, name, path string) (*Launch, error) {
	var argv []string
	switch strings.TrimSpace(name) {
	case "nvim", "vim", "nano", "hx", "emacs":
		argv = []string{name, path}
	case "code", "vscode":
		argv = []string{"code", "--wait", path}
	case "custom":
		custom := strings.TrimSpace(os.Getenv("VISUAL"))
		if custom == "" {
			custom = strings.TrimSpace(os.Getenv("EDITOR"))
		}
		if custom == "" {
			return nil, fmt.Errorf("custom editor requires $VISUAL or $EDITOR")
		}
		argv = append(strings.Fields(custom), path)
	case "":
		return nil, fmt.Errorf("editor not configured")
	default:
		return nil, fmt.Errorf("unsupported editor: %s", name)
	}

	return &Launch{Cmd: exec.CommandContext(ctx, argv[0], argv[1:]...)}, nil
}

// Edit writes initial to a temporary markdown file, waits for the editor to
// exit and returns the saved content.
func Edit(ctx context.Context, name, initial string, stdin io.Reader, stdout, stderr io.Writer) (string, error) {
	f, err := os.CreateTemp("", "promptorg-*.md")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	launch, err := Command(ctx, name, path)
	if err != nil {
		return "", err
	}
	launch.Cmd.Stdin = stdin
	launch.Cmd.Stdout = stdout
	launch.Cmd.Stderr = stderr

	if err := launch.Cmd.Run(); err != nil {
		return "", fmt.Errorf("error waiting for editor to close: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read edited prompt: %w", err)
	}
	return string(data), nil
}
