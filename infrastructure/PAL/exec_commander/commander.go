package exec_commander

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"rawtun/application/logging"
)

// DefaultTimeout bounds how long any single command may run.
const DefaultTimeout = 10 * time.Second

type ExecCommander struct {
	logger  logging.Logger
	timeout time.Duration
}

func NewExecCommander(logger logging.Logger) Commander {
	return &ExecCommander{logger: logger, timeout: DefaultTimeout}
}

func (r *ExecCommander) CombinedOutput(name string, args ...string) ([]byte, error) {
	cmd, cancel := r.command(name, args)
	defer cancel()
	return cmd.CombinedOutput()
}

func (r *ExecCommander) Output(name string, args ...string) ([]byte, error) {
	cmd, cancel := r.command(name, args)
	defer cancel()
	return cmd.Output()
}

func (r *ExecCommander) Run(name string, args ...string) error {
	cmd, cancel := r.command(name, args)
	defer cancel()
	return cmd.Run()
}

func (r *ExecCommander) command(name string, args []string) (*exec.Cmd, context.CancelFunc) {
	if r.logger != nil {
		r.logger.Debugf("exec: %s %s", name, strings.Join(args, " "))
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	return exec.CommandContext(ctx, name, args...), cancel
}
