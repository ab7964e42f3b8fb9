package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveGuild(t *testing.T) {
	readyCheck := ReadyCheck{Guilds: []string{"Alpha", "BETA"}}

	tests := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{name: "exact match", input: "Alpha", expected: "Alpha", found: true},
		{name: "lowercase input", input: "alpha", expected: "Alpha", found: true},
		{name: "mixed case input", input: "bEtA", expected: "BETA", found: true},
		{name: "unknown guild", input: "Gamma", found: false},
		{name: "empty input", input: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, found := readyCheck.ResolveGuild(tt.input)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, resolved)
		})
	}
}

func TestIsClass(t *testing.T) {
	for _, class := range Classes {
		assert.True(t, IsClass(class))
	}
	assert.False(t, IsClass("Paladin"))
	assert.False(t, IsClass("warrior")) // class choices are exact
	assert.False(t, IsClass(""))
}

func TestSignupComplete(t *testing.T) {
	assert.True(t, (&Signup{GuildName: "Alpha", ClassName: "Warrior"}).Complete())
	assert.False(t, (&Signup{GuildName: PendingField, ClassName: "Warrior"}).Complete())
	assert.False(t, (&Signup{GuildName: "Alpha", ClassName: PendingField}).Complete())
	assert.False(t, (&Signup{GuildName: PendingField, ClassName: PendingField}).Complete())
}
