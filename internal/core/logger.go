package core

import (
	"github.com/rs/zerolog"
)

// Logger is the narrow logging surface the engine needs. It's satisfied
// directly by *zerolog.Logger via ZerologAdapter; tests and callers that
// don't care about engine-internal tracing can pass nopLogger{}.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

// ZerologAdapter wraps a zerolog.Logger to satisfy Logger, pairing each
// keyval pair into a structured field via zerolog's Interface.
type ZerologAdapter struct {
	Log zerolog.Logger
}

func (z ZerologAdapter) Debug(msg string, keyvals ...interface{}) {
	ev := z.Log.Debug()
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, _ := keyvals[i].(string)
		if key == "" {
			key = "field"
		}
		ev = ev.Interface(key, keyvals[i+1])
	}
	ev.Msg(msg)
}
