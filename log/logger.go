package log

import (
	"os"
	"path/filepath"

	"github.com/openhms/hca-app/conf"
	"github.com/sirupsen/logrus"
)

var (
	Registry logrus.FieldLogger
	Billing  logrus.FieldLogger
	Claims   logrus.FieldLogger
	CLI      logrus.FieldLogger
)

func init() {
	Registry = Logger(logrus.New(), conf.GetEnv("HCA_ERROR_LOG"),
		"registry", conf.GetEnv("ENVIRONMENT"))
	Billing = Logger(logrus.New(), conf.GetEnv("HCA_ERROR_LOG"),
		"billing", conf.GetEnv("ENVIRONMENT"))
	Claims = Logger(logrus.New(), conf.GetEnv("HCA_ERROR_LOG"),
		"claims", conf.GetEnv("ENVIRONMENT"))
	CLI = Logger(logrus.New(), conf.GetEnv("HCA_ERROR_LOG"),
		"cli", conf.GetEnv("ENVIRONMENT"))
}

func Logger(logger *logrus.Logger, outputFile string,
	application, environment string) logrus.FieldLogger {

	if outputFile != "" {
		if file, err := os.OpenFile(filepath.Clean(outputFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640); err == nil {
			logger.SetOutput(file)
		} else {
			logger.Infof("Failed to open output file %s. Will use stderr. %s",
				outputFile, err.Error())
		}
	}

	return logger.WithFields(logrus.Fields{
		"application": application,
		"environment": environment})
}
