package logger

import (
	"os"

	logger "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// L is the package-wide logger. Library code logs at debug level only;
// applications may swap the level or output.
var L = &logger.Logger{
	Out:   os.Stderr,
	Level: logger.WarnLevel,
	Formatter: &prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	},
}
