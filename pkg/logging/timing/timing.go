package timing

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Timeit returns a func that logs the time elapsed since Timeit was called. Use with defer.
func Timeit(logger logrus.FieldLogger, name string, metadata string) func() {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	start := time.Now()
	return func() {
		logger.WithFields(logrus.Fields{
			"elapsed":  time.Since(start).String(),
			"metadata": metadata,
		}).Debugf("Timeit: %s", name)
	}
}
