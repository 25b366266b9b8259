package health

type Logger interface {
	Warn(format string, v ...interface{})
}
