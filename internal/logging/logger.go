package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Options struct {
	Service      string
	Level        string
	LogstashAddr string
}

// New builds the JSON logger shared by the whole process. When a Logstash
// address is configured every entry is also shipped there; the returned
// closer flushes that hook and is never nil.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	formatter := &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	}

	logger := logrus.New()
	logger.SetFormatter(formatter)
	logger.SetOutput(os.Stdout)
	logger.SetLevel(parseLevel(opts.Level))

	// the service hook must run first so shipped entries carry the field
	if opts.Service != "" {
		logger.AddHook(serviceHook{service: opts.Service})
	}

	var closer io.Closer = nopCloser{}
	if addr := strings.TrimSpace(opts.LogstashAddr); addr != "" {
		hook, err := NewLogstashHook(addr, WithFormatter(formatter))
		if err != nil {
			return nil, nil, err
		}
		logger.AddHook(hook)
		closeOnExit(logger, hook)
		closer = hook
	}
	return logger, closer, nil
}

// closeOnExit makes Fatal flush closer before the process exits, since
// deferred calls do not run on os.Exit.
func closeOnExit(logger *logrus.Logger, closer io.Closer) {
	exit := logger.ExitFunc
	if exit == nil {
		exit = os.Exit
	}
	logger.ExitFunc = func(code int) {
		_ = closer.Close()
		exit(code)
	}
}

func parseLevel(value string) logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(value))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// serviceHook stamps every entry with the service name.
type serviceHook struct {
	service string
}

func (h serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h serviceHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["service"]; !ok {
		entry.Data["service"] = h.service
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
