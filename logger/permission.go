package logger

// Permission implementations indicate whether the environment making a log
// request is allowed to create new log entries
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (_ allow) AllowLogging() bool {
	return true
}

// Allow indicates that the logging request should be allowed
var Allow Permission = allow{}

func allowed(perm Permission) bool {
	return perm == Allow || (perm != nil && perm.AllowLogging())
}
