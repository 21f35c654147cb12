package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/sdpower/ccstatusline/internal/types"
)

// BranchLookup reports the current branch of the repository containing dir.
type BranchLookup interface {
	CurrentBranch(ctx context.Context, dir string) (string, error)
}

// BranchFunc adapts a plain function to BranchLookup.
type BranchFunc func(ctx context.Context, dir string) (string, error)

func (f BranchFunc) CurrentBranch(ctx context.Context, dir string) (string, error) {
	return f(ctx, dir)
}

type GitBranch struct {
	command string
}

func NewGitBranch(command string) *GitBranch {
	if command == "" {
		command = "git"
	}
	return &GitBranch{command: command}
}

// CurrentBranch runs `git branch --show-current` in dir. Detached HEADs and
// non-repository directories produce an empty name or an error.
func (g *GitBranch) CurrentBranch(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, g.command, "branch", "--show-current")
	cmd.Dir = dir

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", types.CommandError{Name: g.command + " branch", Err: err}
	}

	return strings.TrimSpace(stdout.String()), nil
}
