package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	orig := Commit
	Commit = "abc1234"
	t.Cleanup(func() { Commit = orig })

	assert.Equal(t, "pomodoro-shell dev (commit: abc1234, built: unknown)", String())
	assert.Equal(t, "dev", Short())
}

func TestStringWithoutCommit(t *testing.T) {
	assert.Contains(t, String(), "pomodoro-shell dev (commit: ")
}
