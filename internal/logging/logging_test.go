package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithOutput(&buf, "debug", "json")
	require.NoError(t, err)

	logger.WithField("path", "/students").Debug("observed")

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.Equal(t, "observed", gjson.Get(buf.String(), "msg").String())
	assert.Equal(t, "/students", gjson.Get(buf.String(), "path").String())
}

func TestNewWithOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithOutput(&buf, "", "text")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNew_Errors(t *testing.T) {
	_, err := New("loud", "json")
	assert.Error(t, err)

	_, err = New("info", "xml")
	assert.Error(t, err)
}
