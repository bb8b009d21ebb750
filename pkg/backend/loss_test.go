package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLossWithExitCode(t *testing.T) {
	code := 137
	reason := ClassifyLoss(&code, "exited")

	exited, ok := reason.(ProcessExited)
	assert.True(t, ok)
	assert.Equal(t, 137, exited.Code)
}

func TestClassifyLossWithoutExitCode(t *testing.T) {
	reason := ClassifyLoss(nil, "oom")

	lost, ok := reason.(ConnectionLost)
	assert.True(t, ok)
	assert.Equal(t, "oom", lost.Message)
}

func TestClassifyLossPreservesZeroExitCode(t *testing.T) {
	code := 0
	reason := ClassifyLoss(&code, "clean shutdown")

	exited, ok := reason.(ProcessExited)
	assert.True(t, ok)
	assert.Equal(t, 0, exited.Code)
}

func TestClassifyLossPreservesEmptyMessage(t *testing.T) {
	reason := ClassifyLoss(nil, "")

	lost, ok := reason.(ConnectionLost)
	assert.True(t, ok)
	assert.Equal(t, "", lost.Message)
}

func TestLossReasonDescriptions(t *testing.T) {
	assert.Equal(t, "executor process exited with code 137", ProcessExited{Code: 137}.String())
	assert.Equal(t, "connection to executor lost: oom", ConnectionLost{Message: "oom"}.String())
	assert.Equal(t, "connection to executor lost", ConnectionLost{}.String())
}
