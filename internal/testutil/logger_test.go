package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureTB records Log calls while delegating everything else to the real t.
type captureTB struct {
	testing.TB
	lines []string
}

func (c *captureTB) Log(args ...any) { c.lines = append(c.lines, fmt.Sprint(args...)) }
func (c *captureTB) Helper()         {}

func TestNewTestLogger_FormatsRecords(t *testing.T) {
	tb := &captureTB{TB: t}
	logger := NewTestLogger(tb)

	logger.With("component", "exec").Info("spawned", "pid", 42)

	require.Len(t, tb.lines, 1)
	assert.Equal(t, "INFO spawned component=exec pid=42", tb.lines[0])
}

func TestNewTestLogger_DebugEnabled(t *testing.T) {
	tb := &captureTB{TB: t}
	NewTestLogger(tb).Debug("low level detail")

	require.Len(t, tb.lines, 1)
	assert.Equal(t, "DEBUG low level detail", tb.lines[0])
}
