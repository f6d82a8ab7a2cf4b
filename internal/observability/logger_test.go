// File: internal/observability/logger_test.go
package observability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aehnz/Auto-GoogleForms-Filler/internal/config"
)

// resetGlobalLogger is critical for ensuring test isolation, as the logger
// is a global singleton. We must reset it before each test.
func resetGlobalLogger() {
	once = sync.Once{}
	globalLogger.Store(nil)
}

// memSink is an in-memory WriteSyncer for capturing console output.
type memSink struct {
	data []byte
}

func (m *memSink) Write(p []byte) (int, error) {
	m.data = append(m.data, p...)
	return len(p), nil
}
func (m *memSink) Sync() error { return nil }

func TestInitialize(t *testing.T) {
	t.Run("Console Format Is Colorized", func(t *testing.T) {
		resetGlobalLogger()
		sink := &memSink{}

		cfg := config.LoggerConfig{Level: "debug", Format: "console", ServiceName: "TestService"}
		Initialize(cfg, zapcore.Lock(zapcore.AddSync(sink)))
		GetLogger().Info("This is a test message.")

		output := string(sink.data)
		assert.Contains(t, output, "INFO")
		assert.Contains(t, output, "This is a test message.")
		assert.Contains(t, output, colorGreen)
		assert.Contains(t, output, colorReset)
	})

	t.Run("JSON Format Produces Valid JSON", func(t *testing.T) {
		resetGlobalLogger()
		sink := &memSink{}

		cfg := config.LoggerConfig{Level: "info", Format: "json", ServiceName: "JSONTest"}
		Initialize(cfg, zapcore.Lock(zapcore.AddSync(sink)))
		GetLogger().Warn("This is a JSON message.", zap.String("key", "value"))

		var logEntry map[string]any
		err := json.Unmarshal(sink.data, &logEntry)
		require.NoError(t, err, "Log output should be valid JSON")
		assert.Equal(t, "WARN", logEntry["level"])
		assert.Equal(t, "JSONTest", logEntry["logger"])
		assert.Equal(t, "This is a JSON message.", logEntry["msg"])
		assert.Equal(t, "value", logEntry["key"])
	})

	t.Run("Writes To Log File When Configured", func(t *testing.T) {
		resetGlobalLogger()
		logFile := filepath.Join(t.TempDir(), "formfiller-test.log")

		cfg := config.LoggerConfig{Level: "debug", Format: "json", LogFile: logFile, MaxSize: 1}
		Initialize(cfg, zapcore.Lock(zapcore.AddSync(&memSink{})))
		GetLogger().Error("This should go to the file.")
		Sync()

		content, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "This should go to the file.")
	})

	t.Run("Initializes Only Once", func(t *testing.T) {
		resetGlobalLogger()
		sink := &memSink{}

		Initialize(config.LoggerConfig{Level: "info", ServiceName: "First"}, zapcore.Lock(zapcore.AddSync(sink)))
		first := GetLogger()
		Initialize(config.LoggerConfig{Level: "debug", ServiceName: "Second"}, zapcore.Lock(zapcore.AddSync(sink)))
		second := GetLogger()

		assert.Equal(t, first, second)
	})
}

func TestGetLogger(t *testing.T) {
	t.Run("Returns Fallback When Uninitialized", func(t *testing.T) {
		resetGlobalLogger()
		logger := GetLogger()
		require.NotNil(t, logger)
	})

	t.Run("Returns Global Logger After Initialization", func(t *testing.T) {
		resetGlobalLogger()
		Initialize(config.LoggerConfig{Level: "info", ServiceName: "GlobalTest"}, zapcore.Lock(zapcore.AddSync(&memSink{})))

		assert.Equal(t, globalLogger.Load(), GetLogger())
	})
}
