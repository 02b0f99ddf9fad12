// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

var Levels = map[string]logrus.Level{
	"trace": logrus.TraceLevel,
	"debug": logrus.DebugLevel,
	"info":  logrus.InfoLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
	"off":   logrus.PanicLevel,
}

const (
	TimestampFormat = "2006-01-02 15:04:05.0000"
	LogFormat       = "[%module%] [%time%] [%lvl%] %msg%\n"
)

// Setup points the standard logger at out with the given level.
func Setup(level string, out io.Writer) error {
	lvl, ok := Levels[level]
	if !ok {
		return fmt.Errorf("log level must be one of %v", LevelNames())
	}
	logrus.SetOutput(out)
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: TimestampFormat,
		LogFormat:       LogFormat,
	})
	logrus.SetLevel(lvl)
	return nil
}

// For returns an entry tagged with module.
func For(module string) *logrus.Entry {
	return logrus.WithField("module", module)
}

func LevelNames() []string {
	names := make([]string, 0, len(Levels))
	for name := range Levels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
