// Package command runs external tools (npm, go) as best-effort side effects.
package command

import (
	"context"
	"os/exec"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depwatch/domain"
)

// ExecRunner implements domain.Runner on top of os/exec. Failures are
// returned as data so callers can degrade a flag instead of aborting.
type ExecRunner struct{}

// NewExecRunner creates the process-backed runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

var _ domain.Runner = (*ExecRunner)(nil)

// Run executes the command in the given directory and captures its combined
// output. It never returns an error.
func (r *ExecRunner) Run(
	ctx context.Context,
	dir, name string,
	args ...string,
) domain.CommandResult {
	logger.Debugf("Running %s %v in %s", name, args, dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	result := domain.CommandResult{Output: string(output)}
	if err != nil {
		result.Reason = err.Error()
		return result
	}

	result.OK = true
	return result
}
