package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		want     bool
	}{
		{"exact match confirms", "reports/q3.csv\n", "reports/q3.csv", true},
		{"surrounding whitespace trimmed", "  reports/q3.csv  \n", "reports/q3.csv", true},
		{"mismatch declines", "something-else\n", "reports/q3.csv", false},
		{"empty input declines", "\n", "reports/q3.csv", false},
		{"closed stream declines", "", "reports/q3.csv", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewStandardPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("This is destructive.", tt.expected)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), tt.expected)
		})
	}
}

func TestConfirmRejectsEmptyExpectedValue(t *testing.T) {
	p := NewStandardPrompter(strings.NewReader("\n"), &bytes.Buffer{})

	_, err := p.Confirm("message", "")
	assert.Error(t, err)
}
