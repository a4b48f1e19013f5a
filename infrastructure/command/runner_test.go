package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/depwatch/infrastructure/command"
)

func TestExecRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("should report success and capture output", func(t *testing.T) {
		t.Parallel()

		// given
		runner := command.NewExecRunner()

		// when
		result := runner.Run(context.Background(), t.TempDir(), "sh", "-c", "echo hello")

		// then
		assert.True(t, result.OK)
		assert.Empty(t, result.Reason)
		assert.Contains(t, result.Output, "hello")
	})

	t.Run("should report failure as data instead of an error", func(t *testing.T) {
		t.Parallel()

		// given
		runner := command.NewExecRunner()

		// when
		result := runner.Run(context.Background(), t.TempDir(), "sh", "-c", "echo broken >&2; exit 3")

		// then
		assert.False(t, result.OK)
		assert.NotEmpty(t, result.Reason)
		assert.Contains(t, result.Output, "broken")
	})

	t.Run("should fail for a command that does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		runner := command.NewExecRunner()

		// when
		result := runner.Run(context.Background(), t.TempDir(), "definitely-not-a-command")

		// then
		assert.False(t, result.OK)
		assert.NotEmpty(t, result.Reason)
	})
}
