package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"single word", "Alice", true},
		{"two words", "Mary Jane", true},
		{"hyphen", "Anne-Marie", true},
		{"apostrophe", "O'Brien", true},
		{"mixed separators", "Jean-Luc O'Neil", true},
		{"empty", "", false},
		{"digits", "R2D2", false},
		{"trailing space", "Bob ", false},
		{"leading hyphen", "-Bob", false},
		{"double separator", "Ann  Lee", false},
		{"non ascii", "José", false},
		{"symbol", "Bob!", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateName(tc.input))
		})
	}
}
