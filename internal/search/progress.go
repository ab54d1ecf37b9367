package search

// Progress is the progress collaborator the search reports into.
// The Counter only grows the total; the Engine only advances the position.
type Progress interface {
	SetTotal(n int64)
	IncrementTotal(delta int64)
	Advance(n int64)
	Finalize()
}

// Logger receives recoverable problems found during a search.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

type nopLogger struct{}

func (nopLogger) LogDebug(string) {}
func (nopLogger) LogWarn(string)  {}
