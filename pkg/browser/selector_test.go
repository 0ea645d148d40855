package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorQuery(t *testing.T) {
	tests := []struct {
		name     string
		selector Selector
		expected string
	}{
		{
			name:     "class selector gets dot prefix",
			selector: Class("auflistung"),
			expected: ".auflistung",
		},
		{
			name:     "id selector gets hash prefix",
			selector: ID("i0116"),
			expected: "#i0116",
		},
		{
			name:     "tag selector passes through",
			selector: Tag("a"),
			expected: "a",
		},
		{
			name:     "css selector passes through",
			selector: CSS("div.content > table"),
			expected: "div.content > table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.selector.Query())
			assert.Equal(t, tt.expected, tt.selector.String())
		})
	}
}
