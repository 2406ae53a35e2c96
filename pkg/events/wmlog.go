package events

import (
	"github.com/ThreeDotsLabs/watermill"

	"github.com/ghuser/usedmarket/pkg/logger"
)

// wmLogger routes Watermill's internal logging into the project logger.
// Watermill's Trace level is folded into Debug.
type wmLogger struct{ log logger.Logger }

var _ watermill.LoggerAdapter = (*wmLogger)(nil)

func (l *wmLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.log.Error(msg, append(flatten(fields), "error", err)...)
}

func (l *wmLogger) Info(msg string, fields watermill.LogFields) {
	l.log.Info(msg, flatten(fields)...)
}

func (l *wmLogger) Debug(msg string, fields watermill.LogFields) {
	l.log.Debug(msg, flatten(fields)...)
}

func (l *wmLogger) Trace(msg string, fields watermill.LogFields) {
	l.log.Debug(msg, flatten(fields)...)
}

func (l *wmLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &wmLogger{log: l.log.With(flatten(fields)...)}
}

func flatten(fields watermill.LogFields) []any {
	args := make([]any, 0, 2*len(fields))
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
