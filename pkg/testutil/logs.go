package testutil

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
)

// LogRecord is one decoded zerolog JSON line.
type LogRecord struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Fields  map[string]any `json:"-"`
}

// LogCapture collects the output of a zerolog logger.
type LogCapture struct {
	Logger zerolog.Logger
	buf    *bytes.Buffer
}

// NewLogCapture returns a capture whose Logger records every level.
func NewLogCapture() *LogCapture {
	buf := &bytes.Buffer{}
	return &LogCapture{
		Logger: zerolog.New(buf).Level(zerolog.TraceLevel),
		buf:    buf,
	}
}

// Records returns the captured records at level, or all when level is empty.
func (c *LogCapture) Records(level string) []LogRecord {
	var result []LogRecord
	for _, line := range strings.Split(strings.TrimSpace(c.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec LogRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		if err := json.Unmarshal([]byte(line), &rec.Fields); err != nil {
			continue
		}
		if level == "" || rec.Level == level {
			result = append(result, rec)
		}
	}
	return result
}

// Messages returns the messages logged at level.
func (c *LogCapture) Messages(level string) []string {
	var result []string
	for _, rec := range c.Records(level) {
		result = append(result, rec.Message)
	}
	return result
}
