package conversation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConversation_AddsCreator(t *testing.T) {
	c, err := NewConversation("c1", "  Projet Dupont ", "u1", []string{"u2", "u3", "u2"})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID())
	assert.Equal(t, "Projet Dupont", c.Name())
	assert.Equal(t, []string{"u1", "u2", "u3"}, c.MemberIDs())
	assert.True(t, c.HasMember("u1"))
	assert.True(t, c.IsCreator("u1"))
	assert.False(t, c.IsCreator("u2"))
}

func TestNewConversation_Validation(t *testing.T) {
	tests := []struct {
		name    string
		convo   string
		members []string
	}{
		{"blank name", "  ", []string{"u2"}},
		{"no members", "Team", nil},
		{"only creator", "Team", []string{"u1"}},
		{"name too long", strings.Repeat("a", maxNameLength+1), []string{"u2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConversation("c1", tt.convo, "u1", tt.members)
			assert.Error(t, err)
		})
	}
}
