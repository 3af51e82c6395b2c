package system

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/openwrt-builder/internal/logging"
)

// CommandLine renders a command the way a shell user would type it.
func CommandLine(name string, args ...string) string {
	return shellquote.Join(append([]string{name}, args...)...)
}

// hostExec runs commands with os/exec. Every command line is logged at
// debug level.
type hostExec struct{}

func (hostExec) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	logging.Debug("exec", "cmd", CommandLine(name, args...))
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

func (hostExec) ExecuteInteractive(ctx context.Context, name string, args ...string) error {
	logging.Debug("exec", "cmd", CommandLine(name, args...), "interactive", true)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// DryRunExecutor prints commands instead of running them.
// It backs manual mode, where the user runs the printed steps themselves.
type DryRunExecutor struct {
	mu  sync.Mutex
	out io.Writer

	// Lines holds every command line printed so far.
	Lines []string
}

// NewDryRunExecutor creates a DryRunExecutor printing to out (stdout if nil).
func NewDryRunExecutor(out io.Writer) *DryRunExecutor {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunExecutor{out: out}
}

func (e *DryRunExecutor) print(name string, args []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	line := CommandLine(name, args...)
	e.Lines = append(e.Lines, line)
	fmt.Fprintln(e.out, line)
}

func (e *DryRunExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	e.print(name, args)
	return nil, nil
}

func (e *DryRunExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) error {
	e.print(name, args)
	return nil
}

var _ CommandExecutor = (*DryRunExecutor)(nil)
