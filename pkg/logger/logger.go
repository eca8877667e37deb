package logger

import (
	"os"
	"strings"

	"github.com/op/go-logging"
)

const format = `%{time:2006-01-02 15:04:05} %{level:.5s} %{module} %{shortfile} ▶ %{message}`

// Init installs the process-wide backend. Packages keep their own
// logging.MustGetLogger handle and pick this up.
func Init(level string) error {
	baseBackend := logging.NewLogBackend(os.Stdout, "", 0)
	backendFormatter := logging.NewBackendFormatter(baseBackend, logging.MustStringFormatter(format))
	backendLeveled := logging.AddModuleLevel(backendFormatter)

	logLevel, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		backendLeveled.SetLevel(logging.INFO, "")
		logging.SetBackend(backendLeveled)
		return err
	}
	backendLeveled.SetLevel(logLevel, "")
	logging.SetBackend(backendLeveled)
	return nil
}
