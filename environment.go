package gw

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// An Environment is a different context in which a gateway operates.
type Environment string

const (
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

// ParseEnvironment uppercases val into a valid Environment.
func ParseEnvironment(val string) (Environment, error) {
	env := Environment(strings.ToUpper(strings.TrimSpace(val)))
	if err := env.Valid(); err != nil {
		return "", err
	}

	return env, nil
}

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Development, Production, Staging, Testing:
		return nil
	default:
		return ErrNotValid
	}
}

func (e Environment) IsDevelopment() bool { return e == Development }

// envVarOr parses the environment variable for key,
// falling back to def when it is unset or parse fails.
func envVarOr[T any](key string, def T, parse func(string) (T, error)) T {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return def
	}

	v, err := parse(val)
	if err != nil {
		return def
	}

	return v
}

// EnvVarOrBool parses the environment variable for key as [strconv.ParseBool] does,
// e.g., "true", "TRUE" or "1", or returns def.
func EnvVarOrBool(key string, def bool) bool {
	return envVarOr(key, def, strconv.ParseBool)
}

// EnvVarOrDuration parses the environment variable for key into a [time.Duration], or returns def.
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	return envVarOr(key, def, time.ParseDuration)
}

// EnvVarOrEnv parses the environment variable for key into an [Environment],
// or returns def when it is not a valid [Environment].
func EnvVarOrEnv(key string, def Environment) Environment {
	return envVarOr(key, def, ParseEnvironment)
}

// EnvVarOrInt64 parses the environment variable for key as a base 10 int64, or returns def.
func EnvVarOrInt64(key string, def int64) int64 {
	return envVarOr(key, def, func(val string) (int64, error) { return strconv.ParseInt(val, 10, 64) })
}

// EnvVarOrString gets the environment variable for key, or returns def.
func EnvVarOrString(key, def string) string {
	return envVarOr(key, def, func(val string) (string, error) { return val, nil })
}

// EnvVarOrStrings splits the comma-separated environment variable for key,
// dropping empty entries, or returns def when none remain.
func EnvVarOrStrings(key string, def []string) []string {
	var vals []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			vals = append(vals, v)
		}
	}

	if len(vals) == 0 {
		return def
	}

	return vals
}
