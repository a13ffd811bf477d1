package sealevel

// Logger receives program log output produced while an instruction executes.
type Logger interface {
	Log(msg string)
}

// LogRecorder collects program logs in memory.
type LogRecorder struct {
	Logs []string
}

func (l *LogRecorder) Log(msg string) {
	l.Logs = append(l.Logs, msg)
}

func (execCtx *ExecutionCtx) programLog(msg string) {
	if execCtx.Log != nil {
		execCtx.Log.Log("Program log: " + msg)
	}
}
