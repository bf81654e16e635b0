package conf

/*
   Package conf wraps viper to provide configuration lookup for the hca
   app. Configuration is read once from an env file at startup and kept
   immutable for the lifetime of the process (tests excepted); any key
   missing from the file falls through to the process environment.
*/

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

// Instance of the viper struct holding the parsed configuration. Only
// reachable through GetEnv, LookupEnv, SetEnv, and UnsetEnv.
var envVars viper.Viper

// Load-state for the configuration file.
const (
	configGood    uint8 = 0
	configBad     uint8 = 1
	noConfigFound uint8 = 2
)

var state = configGood

// setup points viper at the env file and reads it. Called exactly once
// from init.
func setup(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("local")
	v.SetConfigType("env")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		state = configBad
	}

	return v
}

func init() {
	locations := []string{
		os.Getenv("HCA_CONFIG_DIR"),
		"/etc/hca",
	}

	if found, loc := findEnv(locations); found {
		envVars = *setup(loc)
	} else {
		state = noConfigFound
	}
}

// findEnv walks the candidate directories and reports the first one
// containing a local.env file.
func findEnv(locations []string) (bool, string) {
	for _, loc := range locations {
		if loc == "" {
			continue
		}
		if _, err := os.Stat(loc + "/local.env"); err == nil {
			return true, loc
		}
	}
	return false, ""
}

// GetEnv retrieves the value stored in conf, or "" if it does not
// exist. Keys absent from the config file are looked up in the process
// environment and copied into conf to avoid repeated OS calls.
func GetEnv(key string) string {
	if state == configGood {
		value := envVars.GetString(key)

		if value == "" {
			if v, ok := os.LookupEnv(key); ok {
				value = v
				test := &testing.T{}
				_ = SetEnv(test, key, v)
			}
		}

		return value
	}

	return os.Getenv(key)
}

// LookupEnv augments os.LookupEnv to consult the conf store first.
func LookupEnv(key string) (string, bool) {
	if state == configGood {
		if value := envVars.Get(key); value != nil && value != "" {
			return value.(string), true
		}
		if v, ok := os.LookupEnv(key); ok {
			test := &testing.T{}
			_ = SetEnv(test, key, v)
			return v, true
		}
		return "", false
	}

	return os.LookupEnv(key)
}

// SetEnv adds a key/value into conf. The protect parameter exists so
// callers knowingly restrict use to this package and tests.
func SetEnv(protect *testing.T, key string, value string) error {
	var err error

	if state == configGood {
		envVars.Set(key, value)
	} else {
		err = os.Setenv(key, value)
	}

	return err
}

// UnsetEnv removes a variable from both conf and the environment.
func UnsetEnv(protect *testing.T, key string) error {
	if state == configGood {
		envVars.Set(key, "")
	}

	return os.Unsetenv(key)
}
