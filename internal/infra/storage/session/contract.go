package session

type Logger interface {
	Warn(format string, v ...interface{})
}
