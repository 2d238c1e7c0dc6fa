package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salon/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := logging.New(&buf, "debug", "json", "salon")
	logger.Debug("poll", "due", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "poll", entry["msg"])
	assert.Equal(t, "salon", entry["app"])
	assert.EqualValues(t, 2, entry["due"])
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer

	logger := logging.New(&buf, "warn", "text", "salon")
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNew_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := logging.New(&buf, "chatty", "text", "salon")
	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
