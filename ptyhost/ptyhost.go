// Package ptyhost spawns the child shell under a pseudo-terminal and
// bridges it to the event loop, generalized from the teacher's
// shell/pty.go (which hard-coded a single fixed-size PTY per process) into
// a reusable per-tab host with its own reader goroutine, matching the
// external-interface contract spec.md §6 describes: spawn returns a
// reader/writer/resize/kill surface, nothing more.
package ptyhost

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"runtime"

	"github.com/creack/pty"
)

// Output is one batch of bytes read from a child's PTY master, posted onto
// the event loop's channel by the reader goroutine.
type Output struct {
	Bytes []byte
}

// Exited is posted once the reader goroutine observes EOF.
type Exited struct {
	Err error
}

// Host owns one spawned child and its PTY master/slave pair. The reader
// half runs on its own goroutine and only ever posts to Events; nothing
// else touches Host state from that goroutine.
type Host struct {
	cmd    *exec.Cmd
	master *os.File

	Events chan<- interface{} // carries Output / Exited, posted by the reader goroutine
}

// Options configures Spawn.
type Options struct {
	Shell string // overrides $SHELL / passwd entry when non-empty
	Dir   string
	Cols  int
	Rows  int
	Env   []string
}

// Spawn starts the child shell attached to a new PTY and launches its
// reader goroutine. Events must be buffered or drained promptly — the
// reader blocks on a full channel by design (spec.md §5's back-pressure
// rule), which naturally rate-limits pathological producers.
func Spawn(ctx context.Context, opts Options, events chan<- interface{}) (*Host, error) {
	shell, err := findShell(opts.Shell)
	if err != nil {
		return nil, fmt.Errorf("ptyhost: %w", err)
	}

	cmd := exec.CommandContext(ctx, shell)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	cmd.Env = opts.Env
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	cmd.Env = append(cmd.Env, "TERM=xterm-256color", "COLORTERM=truecolor")

	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	master, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	if err != nil {
		return nil, fmt.Errorf("ptyhost: spawn %s: %w", shell, err)
	}

	h := &Host{cmd: cmd, master: master, Events: events}
	go h.readLoop()
	return h, nil
}

func (h *Host) readLoop() {
	buf := make([]byte, 32*1024)
	for {
		n, err := h.master.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			h.Events <- Output{Bytes: chunk}
		}
		if err != nil {
			h.Events <- Exited{Err: err}
			return
		}
	}
}

// Write sends bytes to the child's stdin (keyboard/paste/query responses).
func (h *Host) Write(p []byte) (int, error) { return h.master.Write(p) }

// Resize propagates a grid resize to the PTY, which delivers SIGWINCH to
// the child.
func (h *Host) Resize(cols, rows int) error {
	return pty.Setsize(h.master, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}

// Kill terminates the child without waiting for it — the fast-exit policy
// in spec.md §5/§7 never blocks on PTY cleanup.
func (h *Host) Kill() error {
	if h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Kill()
}

// Close releases the PTY master file descriptor; the child sees EOF on its
// stdin as a result, which most shells treat as a hangup.
func (h *Host) Close() error {
	return h.master.Close()
}

// findShell resolves the shell to exec, preferring an explicit override,
// then $SHELL, then the passwd database entry, then a hard-coded fallback.
func findShell(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if s := os.Getenv("SHELL"); s != "" {
		return s, nil
	}
	if u, err := user.Current(); err == nil {
		if shell, err := shellFromPasswd(u.Username); err == nil && shell != "" {
			return shell, nil
		}
	}
	if runtime.GOOS == "windows" {
		return "", fmt.Errorf("no shell configured")
	}
	return "/bin/sh", nil
}
