package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with the fields the services log with
type Logger struct {
	*logrus.Logger
}

// New creates a new logger instance. JSON output is used unless text is
// requested (dev mode).
func New(level string, text bool) *Logger {
	log := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	if text {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}
	log.SetOutput(os.Stdout)

	return &Logger{Logger: log}
}

// Discard returns a logger that drops everything, for tests
func Discard() *Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Logger{Logger: log}
}

// WithComponent creates a new logger entry with component name field
func (l *Logger) WithComponent(component string) *logrus.Entry {
	return l.Logger.WithField("component", component)
}

// WithUser creates a new logger entry with username field
func (l *Logger) WithUser(username string) *logrus.Entry {
	return l.Logger.WithField("username", username)
}

// WithRequestID creates a new logger entry with request ID field
func (l *Logger) WithRequestID(requestID string) *logrus.Entry {
	return l.Logger.WithField("request_id", requestID)
}

// Audit logs a state-changing action by a user
func (l *Logger) Audit(username, action string, success bool, details logrus.Fields) {
	entry := l.WithUser(username).WithFields(logrus.Fields{
		"audit":   true,
		"action":  action,
		"success": success,
	}).WithFields(details)

	if success {
		entry.Info("Audit event")
	} else {
		entry.Warn("Audit event failed")
	}
}
