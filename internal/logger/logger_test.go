package logger

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name     string
		logger   Logger
		wantOut  string
		wantErrs string
	}{
		{"quiet", Logger{}, "", "[warn] w 3\n[error] e 4\n"},
		{"verbose", Logger{Verbose: true}, "[info] i 1\n", "[warn] w 3\n[error] e 4\n"},
		{"debug", Logger{Debug: true}, "[info] i 1\n[debug] d 2\n", "[warn] w 3\n[error] e 4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errs bytes.Buffer
			l := tt.logger
			l.Out, l.Err = &out, &errs

			l.Infof("i %d", 1)
			l.Debugf("d %d", 2)
			l.Warnf("w %d", 3)
			l.Errorf("e %d", 4)

			assert.Equal(t, tt.wantOut, out.String())
			assert.Equal(t, tt.wantErrs, errs.String())
		})
	}
}
