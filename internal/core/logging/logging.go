// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup sets the output, format and level of the standard logrus logger.
// Unknown level names fall back to info. A nil out writes to stderr.
func Setup(level string, json bool, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)

	if json {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}
