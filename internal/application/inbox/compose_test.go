package inbox

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMentions(t *testing.T) {
	f := newFixture(t)
	f.refresh(t)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing query", "Bonjour @bob", "Bonjour @[Bob Durand](bob)"},
		{"punctuation after query", "@carol, tu viens ?", "@[Carol Petit](carol), tu viens ?"},
		{"underscore for space", "@bob_durand merci", "@[Bob Durand](bob) merci"},
		{"case folded", "vu @CAROL", "vu @[Carol Petit](carol)"},
		{"several mentions", "@bob et @carol", "@[Bob Durand](bob) et @[Carol Petit](carol)"},
		{"e-mail address untouched", "écris à x@bob.fr", "écris à x@bob.fr"},
		{"nobody matches", "@zoé salut", "@zoé salut"},
		{"self is not a candidate", "@alice", "@alice"},
		{"existing token untouched", "déjà @[Bob Durand](bob) ok", "déjà @[Bob Durand](bob) ok"},
		{"no mention", "rien à signaler", "rien à signaler"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.inbox.ResolveMentions(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Empty(t, f.inbox.Toasts())
}

func TestResolveMentions_Ambiguous(t *testing.T) {
	f := newFixture(t)
	f.backend.members = append(f.backend.members, member(daveID, "Bob Dupont", "dave@example.com"))
	require.NoError(t, f.inbox.Refresh(context.Background()))

	_, err := f.inbox.ResolveMentions("salut @bob")
	require.ErrorIs(t, err, ErrAmbiguousMention)
	assert.Contains(t, err.Error(), "Bob Dupont, Bob Durand")
	assert.Len(t, f.inbox.Toasts(), 1)

	got, err := f.inbox.ResolveMentions("salut @bob_dupont")
	require.NoError(t, err)
	assert.Equal(t, "salut @[Bob Dupont](dave)", got)
}

func TestResolveMentions_ExactFullNameWins(t *testing.T) {
	f := newFixture(t)
	f.backend.members = append(f.backend.members, member(daveID, "Bob Durand Fils", "dave@example.com"))
	require.NoError(t, f.inbox.Refresh(context.Background()))

	got, err := f.inbox.ResolveMentions("@bob_durand")
	require.NoError(t, err)
	assert.Equal(t, "@[Bob Durand](bob)", got)
}
