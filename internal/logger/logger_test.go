package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.error)
	assert.NotNil(t, logger.warn)
}

func TestLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriter(&out, &errOut)

	logger.Info("post %s loaded", "hello-world")
	logger.Warn("comment for %s dropped", "abc")
	logger.Error("query failed: %d", 500)

	assert.Contains(t, out.String(), "[INFO] post hello-world loaded")
	assert.NotContains(t, out.String(), "WARN")
	assert.Contains(t, errOut.String(), "[WARN] comment for abc dropped")
	assert.Contains(t, errOut.String(), "[ERROR] query failed: 500")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Info("nothing %s", "here")
	logger.Error("nothing")
}
