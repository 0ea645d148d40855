package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedStatus(buf *bytes.Buffer) *Status {
	s := NewStatusWriter(buf)
	s.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 30, 5, 0, time.UTC)
	}
	return s
}

func TestStatusLinesCarryTimestampAndPhase(t *testing.T) {
	tests := []struct {
		name    string
		emit    func(s *Status)
		message string
	}{
		{
			name:    "starting",
			emit:    func(s *Status) { s.Startingf("Starting LSF monitor") },
			message: "Starting LSF monitor",
		},
		{
			name:    "refreshing",
			emit:    func(s *Status) { s.Refreshingf("Refreshing page") },
			message: "Refreshing page",
		},
		{
			name:    "changed",
			emit:    func(s *Status) { s.Changedf("Changes detected!") },
			message: "Changes detected!",
		},
		{
			name:    "unchanged",
			emit:    func(s *Status) { s.Unchangedf("No changes detected") },
			message: "No changes detected",
		},
		{
			name:    "waiting with args",
			emit:    func(s *Status) { s.Waitingf("Waiting up to %s", 5*time.Minute) },
			message: "Waiting up to 5m0s",
		},
		{
			name:    "recovered",
			emit:    func(s *Status) { s.Recoveredf("Recovered from error, continuing monitoring") },
			message: "Recovered from error, continuing monitoring",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(fixedStatus(&buf))

			out := buf.String()
			assert.Contains(t, out, "14.03.2025 09:30:05")
			assert.Contains(t, out, tt.message)
			assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
		})
	}
}
