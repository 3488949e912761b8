package lib

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaultLogger(t *testing.T) {
	expected := NewLogger(LoggerConfig{
		Level: DebugLevel,
		Out:   os.Stdout,
	})
	require.Equal(t, expected, NewDefaultLogger())
}

func TestNewNullLogger(t *testing.T) {
	expected := NewLogger(LoggerConfig{
		Level: DebugLevel,
		Out:   io.Discard,
	})
	require.Equal(t, expected, NewNullLogger())
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		level    int32
		log      func(l LoggerI)
		contains string
		empty    bool
	}{
		{
			name:     "info at info",
			detail:   "an info message is written when the level is info",
			level:    InfoLevel,
			log:      func(l LoggerI) { l.Info("pool created") },
			contains: "INFO: pool created",
		},
		{
			name:   "debug at info",
			detail: "a debug message is dropped when the level is info",
			level:  InfoLevel,
			log:    func(l LoggerI) { l.Debug("reserves loaded") },
			empty:  true,
		},
		{
			name:     "formatted warn",
			detail:   "a formatted warn message is written at the debug level",
			level:    DebugLevel,
			log:      func(l LoggerI) { l.Warnf("rejected %s", "buy") },
			contains: "WARN: rejected buy",
		},
		{
			name:   "error at above error",
			detail: "nothing is written when the level is above error",
			level:  ErrorLevel + 1,
			log:    func(l LoggerI) { l.Error("boom") },
			empty:  true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			test.log(NewLogger(LoggerConfig{Level: test.level, Out: buf}))
			if test.empty {
				require.Zero(t, buf.Len())
				return
			}
			require.Contains(t, buf.String(), test.contains)
		})
	}
}
