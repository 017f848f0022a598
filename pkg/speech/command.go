package speech

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"go.uber.org/zap"
)

// Command runs an external transcriber and treats each line it prints as
// a finalized segment. Stopping capture kills the process.
type Command struct {
	Name string
	Args []string
	Log  *zap.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stream *Stream
}

func (c *Command) Start(ctx context.Context, h Handler) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cmd != nil {
		return ErrAlreadyStarted
	}
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("speech: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("speech: start %s: %w", c.Name, err)
	}
	log.Debug("transcriber started", zap.String("command", c.Name), zap.Int("pid", cmd.Process.Pid))

	c.cmd = cmd
	c.stream = NewStream(stdout)
	return c.stream.Start(ctx, &commandHandler{Handler: h, cmd: cmd, log: log})
}

func (c *Command) Stop() error {
	c.mu.Lock()
	cmd, stream := c.cmd, c.stream
	c.mu.Unlock()
	if cmd == nil {
		return nil
	}
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	return stream.Stop()
}

// Done is closed once the transcriber has exited and OnEnd has run.
func (c *Command) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stream == nil {
		return nil
	}
	return c.stream.Done()
}

// commandHandler reaps the process before reporting the end of capture.
type commandHandler struct {
	Handler
	cmd *exec.Cmd
	log *zap.Logger
}

func (h *commandHandler) OnEnd(err error) {
	if waitErr := h.cmd.Wait(); waitErr != nil {
		h.log.Debug("transcriber exited", zap.Error(waitErr))
	}
	h.Handler.OnEnd(err)
}
