package testutil

import (
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// Importing testutil silences logrus unless tests run with -v.
func init() {
	logrus.SetLevel(logrus.TraceLevel)

	for _, arg := range os.Args {
		if arg == "-test.v=true" || arg == "-test.v" {
			return
		}
	}
	logrus.SetOutput(io.Discard)
}

func DisableLogging() (reset func()) {
	original := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	return func() {
		logrus.SetOutput(original)
	}
}

// CaptureLogs records every entry written through the standard logger until
// the test ends.
func CaptureLogs(t *testing.T) *test.Hook {
	original := logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))

	hook := new(test.Hook)
	logrus.AddHook(hook)

	t.Cleanup(func() {
		logrus.StandardLogger().ReplaceHooks(original)
	})
	return hook
}
