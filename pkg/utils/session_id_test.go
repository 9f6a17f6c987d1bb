package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSessionID_Format(t *testing.T) {
	id := GenerateSessionID("My Colony")
	assert.Regexp(t, regexp.MustCompile(`^my-colony-[0-9a-f]{8}$`), id)
}

func TestGenerateSessionID_EmptyPrefix(t *testing.T) {
	id := GenerateSessionID("   ")
	assert.Regexp(t, regexp.MustCompile(`^session-[0-9a-f]{8}$`), id)
}

func TestGenerateSessionID_Unique(t *testing.T) {
	assert.NotEqual(t, GenerateSessionID("run"), GenerateSessionID("run"))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Colony", "colony"},
		{"  Tribal  Start ", "tribal-start"},
		{"a--b__c", "a-b-c"},
		{"!!!", ""},
		{"Run #2", "run-2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, slugify(tt.input))
		})
	}
}
