package logger

import (
	"os"

	"github.com/getamis/sirius/log"
	"github.com/rollbar/rollbar-go"
)

var logger = log.Discard()

func Logger() log.Logger {
	return logger
}

func SetLogger(l log.Logger) {
	logger = l
}

// InitFromEnv wires the package logger to stderr, and additionally to
// Rollbar when BPSW_ROLLBAR_TOKEN is set in the environment — so the error
// logged for a misconfigured task is also handed to the Rollbar handler, not
// just written to a terminal.
func InitFromEnv() {
	handler := log.StreamHandler(os.Stderr, log.TerminalFormat())

	if token := os.Getenv("BPSW_ROLLBAR_TOKEN"); token != "" {
		rollbar.SetToken(token)
		env := os.Getenv("BPSW_ROLLBAR_ENVIRONMENT")
		if env == "" {
			env = "production"
		}
		rollbar.SetEnvironment(env)
		handler = log.MultiHandler(handler, &log.RollbarHandler{})
	}

	l := log.New()
	l.SetHandler(handler)
	SetLogger(l)
}
