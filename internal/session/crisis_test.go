package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCrisis(t *testing.T) {
	cases := []struct {
		content string
		want    bool
	}{
		{"I want to die", true},
		{"I've been thinking about SUICIDE a lot", true},
		{"sometimes I hurt myself without realizing", true},
		{"there's no reason to live anymore", true},
		{"work has been stressful lately", false},
		{"my father was distant when I was a kid", false},
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, detectCrisis(tc.content), "content: %q", tc.content)
	}
}
