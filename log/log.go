// Package log wraps github.com/astaxie/beego/logs the way
// copernet-copernicus/log/log.go does: a single package-level logger, level parsed from a
// config string, and a thin Tracef/Debugf/Infof/Warnf/Errorf surface used instead of the
// standard library's log package.
package log

import (
	"strings"

	"github.com/astaxie/beego/logs"
)

var logger = logs.NewLogger(1000)

func init() {
	logger.SetLogger(logs.AdapterConsole)
	logger.EnableFuncCallDepth(true)
}

// SetLevel parses a level name ("debug", "info", "warn", "error", ...) as the teacher's
// validLogLevel does and applies it.
func SetLevel(name string) {
	level, ok := parseLevel(name)
	if !ok {
		level = logs.LevelInfo
	}
	logger.SetLevel(level)
}

func parseLevel(name string) (int, bool) {
	switch strings.ToLower(name) {
	case "emergency":
		return logs.LevelEmergency, true
	case "alert":
		return logs.LevelAlert, true
	case "critical":
		return logs.LevelCritical, true
	case "error":
		return logs.LevelError, true
	case "warn", "warning":
		return logs.LevelWarn, true
	case "notice":
		return logs.LevelNotice, true
	case "info":
		return logs.LevelInfo, true
	case "debug":
		return logs.LevelDebug, true
	default:
		return 0, false
	}
}

func Tracef(format string, args ...interface{}) { logger.Debug(format, args...) }
func Debugf(format string, args ...interface{}) { logger.Debug(format, args...) }
func Infof(format string, args ...interface{})  { logger.Info(format, args...) }
func Warnf(format string, args ...interface{})  { logger.Warn(format, args...) }
func Errorf(format string, args ...interface{}) { logger.Error(format, args...) }
