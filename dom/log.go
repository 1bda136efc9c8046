package dom

import (
	"github.com/sirupsen/logrus"
)

var logger = logrus.StandardLogger()

// SetLogger replaces the logger used to report misuse of the dispatch API.
// Passing nil restores the logrus standard logger.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	logger = l
}

// assertFailed reports a programmer error. Builds tagged domdebug panic;
// other builds log and let the caller return its neutral result.
func assertFailed(msg string, fields logrus.Fields) {
	logger.WithFields(fields).Warn(msg)
	if debugAssertions {
		panic("dom: " + msg)
	}
}
