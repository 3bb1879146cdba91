package utils

import (
	"os"
	"strings"
	"time"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// PtrTime returns pointer to time.Time
func PtrTime(t time.Time) *time.Time { return &t }
