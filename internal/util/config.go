package util

// Config holds runtime settings and flags.
type Config struct {
	DSN               string
	ResumeWindowHours int
	MaxRecentHistory  int
	Debug             bool
}
