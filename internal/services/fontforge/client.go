package fontforge

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"glyphsmith/internal/textutil"
)

// Shell routing modes.
const (
	ShellNone = "none"
	ShellSh   = "sh"
	ShellCmd  = "cmd"
)

// Invocation is one engine run.
type Invocation struct {
	Script string
	Args   []string
	// Dir is the process working directory.
	Dir string
}

// Outcome is what the engine reported for one run.
type Outcome struct {
	ExitCode int
	Stderr   string
	Duration time.Duration
}

// Engine runs operation scripts. It is the seam tests replace.
type Engine interface {
	Invoke(ctx context.Context, inv Invocation) (Outcome, error)
}

// Command is a fully resolved process description.
type Command struct {
	Path string
	Args []string
	Dir  string
	// CmdLine, when set, replaces the argument vector with a raw command
	// line handed to the OS unmodified. Only supported on Windows.
	CmdLine string
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, cmd Command, onStdout func(string)) (exitCode int, stderr string, err error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithStdout receives each stdout line as the engine prints it.
func WithStdout(fn func(string)) Option {
	return func(c *Client) {
		c.onStdout = fn
	}
}

// WithShellPath overrides the interpreter used for sh routing.
func WithShellPath(path string) Option {
	return func(c *Client) {
		if strings.TrimSpace(path) != "" {
			c.shPath = path
		}
	}
}

// Client wraps FontForge CLI interactions.
type Client struct {
	binary   string
	shell    string
	shPath   string
	exec     Executor
	onStdout func(string)
}

// New constructs a FontForge client for binary using the given shell mode.
func New(binary, shell string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("fontforge binary required")
	}
	shell = strings.ToLower(strings.TrimSpace(shell))
	switch shell {
	case "":
		shell = ShellNone
	case ShellNone, ShellSh, ShellCmd:
	default:
		return nil, fmt.Errorf("unsupported shell %q", shell)
	}
	client := &Client{
		binary: binary,
		shell:  shell,
		shPath: "/bin/sh",
		exec:   commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Invoke runs the engine with the script and arguments.
func (c *Client) Invoke(ctx context.Context, inv Invocation) (Outcome, error) {
	if strings.TrimSpace(inv.Script) == "" {
		return Outcome{}, errors.New("fontforge script required")
	}
	cmd, err := c.Command(inv)
	if err != nil {
		return Outcome{}, err
	}

	start := time.Now()
	code, stderr, err := c.exec.Run(ctx, cmd, c.onStdout)
	outcome := Outcome{ExitCode: code, Stderr: stderr, Duration: time.Since(start)}
	if err != nil {
		return outcome, fmt.Errorf("fontforge: %w", err)
	}
	return outcome, nil
}

// Command renders the process description for inv without running it.
func (c *Client) Command(inv Invocation) (Command, error) {
	argv := append([]string{c.binary, "-script", inv.Script}, inv.Args...)
	switch c.shell {
	case ShellSh:
		return Command{
			Path: c.shPath,
			Args: []string{"-c", textutil.JoinArgs(textutil.DialectSh, argv...)},
			Dir:  inv.Dir,
		}, nil
	case ShellCmd:
		// cmd /s strips exactly the outer quote pair and runs the rest as typed.
		line := textutil.JoinArgs(textutil.DialectCmd, argv...)
		return Command{
			Path:    "cmd.exe",
			CmdLine: `cmd.exe /d /s /c "` + line + `"`,
			Dir:     inv.Dir,
		}, nil
	default:
		return Command{Path: c.binary, Args: argv[1:], Dir: inv.Dir}, nil
	}
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, command Command, onStdout func(string)) (int, string, error) {
	cmd := exec.CommandContext(ctx, command.Path, command.Args...) //nolint:gosec
	cmd.Dir = command.Dir
	if command.CmdLine != "" {
		if err := applyRawCmdLine(cmd, command.CmdLine); err != nil {
			return -1, "", err
		}
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, "", fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, "", fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return -1, "", fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once
	var errBuf bytes.Buffer

	wg.Add(2)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if onStdout != nil {
				onStdout(scanner.Text())
			}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() { scanErr = err })
			_, _ = io.Copy(io.Discard, stdout)
		}
	}()
	go func() {
		defer wg.Done()
		if _, err := io.Copy(&errBuf, stderr); err != nil {
			once.Do(func() { scanErr = err })
		}
	}()

	wg.Wait()
	waitErr := cmd.Wait()
	captured := errBuf.String()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, captured, ctxErr
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			if code, ok := exitStatus(exitErr); ok {
				return code, captured, nil
			}
		}
		return -1, captured, fmt.Errorf("wait command: %w", waitErr)
	}
	if scanErr != nil {
		return 0, captured, fmt.Errorf("read output: %w", scanErr)
	}
	return 0, captured, nil
}

// exitStatus maps a finished process to an exit code. A process killed by a
// signal reports 128+signal, as a POSIX shell would.
func exitStatus(exitErr *exec.ExitError) (int, bool) {
	if code := exitErr.ExitCode(); code >= 0 {
		return code, true
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal()), true
	}
	return 0, false
}
