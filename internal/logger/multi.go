package logger

import "github.com/harrison/rsearch/internal/search"

// Multi forwards every call to each of its loggers in order.
type Multi struct {
	loggers []Logger
}

// NewMulti returns a Multi over the non-nil loggers.
func NewMulti(loggers ...Logger) *Multi {
	m := &Multi{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *Multi) LogTrace(message string) {
	for _, l := range m.loggers {
		l.LogTrace(message)
	}
}

func (m *Multi) LogDebug(message string) {
	for _, l := range m.loggers {
		l.LogDebug(message)
	}
}

func (m *Multi) LogInfo(message string) {
	for _, l := range m.loggers {
		l.LogInfo(message)
	}
}

func (m *Multi) LogWarn(message string) {
	for _, l := range m.loggers {
		l.LogWarn(message)
	}
}

func (m *Multi) LogError(message string) {
	for _, l := range m.loggers {
		l.LogError(message)
	}
}

func (m *Multi) LogSearchStart(opts search.Options) {
	for _, l := range m.loggers {
		l.LogSearchStart(opts)
	}
}

func (m *Multi) LogSummary(result *search.Result) {
	for _, l := range m.loggers {
		l.LogSummary(result)
	}
}
