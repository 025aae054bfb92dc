package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// fromEnv reads key and converts it with parse. Unset values and values parse
// rejects yield fallback.
func fromEnv[T any](key string, fallback T, parse func(string) (T, bool)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if v, ok := parse(raw); ok {
		return v
	}
	return fallback
}

func envOrDefault(key, defaultValue string) string {
	return fromEnv(key, defaultValue, func(raw string) (string, bool) { return raw, true })
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	return fromEnv(key, defaultValue, func(raw string) (time.Duration, bool) {
		d, err := time.ParseDuration(raw)
		return d, err == nil && d > 0
	})
}

func intEnvOrDefault(key string, defaultValue int) int {
	return fromEnv(key, defaultValue, func(raw string) (int, bool) {
		n, err := strconv.Atoi(raw)
		return n, err == nil && n > 0
	})
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	return fromEnv(key, defaultValue, parseBool)
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

// ParseOffsets parses a comma separated list of signed day offsets ("0,-1,-2").
// Blank entries are skipped; any malformed entry invalidates the whole list.
func ParseOffsets(raw string) ([]int, bool) {
	parts := strings.Split(raw, ",")
	offsets := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		val, err := strconv.Atoi(part)
		if err != nil {
			return nil, false
		}
		offsets = append(offsets, val)
	}
	if len(offsets) == 0 {
		return nil, false
	}
	return offsets, true
}

func offsetsEnvOrDefault(key, defaultValue string) []int {
	fallback, _ := ParseOffsets(defaultValue)
	return fromEnv(key, fallback, ParseOffsets)
}
