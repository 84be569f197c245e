package mention

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const johnID = "0b8f6c1e-5f43-4b6a-9d8e-3c2a1f7e9d10"

var members = []Candidate{
	{ID: johnID, FirstName: "John", LastName: "Doe"},
	{ID: "u-2", FirstName: "Élodie", LastName: "Martin"},
	{ID: "u-3", FirstName: "Joséphine", LastName: "Baker"},
}

func TestActiveQuery(t *testing.T) {
	svc := NewService()

	tests := []struct {
		name   string
		text   string
		caret  int
		query  string
		start  int
		active bool
	}{
		{"after at", "Hello @Jo", 9, "Jo", 6, true},
		{"bare at", "Hello @", 7, "", 6, true},
		{"whitespace breaks", "Hello @Jo hi", 12, "", 0, false},
		{"no at", "Hello", 5, "", 0, false},
		{"caret inside query", "Hello @John", 8, "J", 6, true},
		{"caret out of range", "Hi", 10, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := svc.ActiveQuery(tt.text, tt.caret)
			assert.Equal(t, tt.active, ok)
			if tt.active {
				assert.Equal(t, tt.query, q.Text)
				assert.Equal(t, tt.start, q.Start)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	svc := NewService()

	got := svc.Filter(members, "jo")
	require.Len(t, got, 2)
	assert.Equal(t, johnID, got[0].ID)
	assert.Equal(t, "u-3", got[1].ID)

	got = svc.Filter(members, "ÉLODIE")
	require.Len(t, got, 1)
	assert.Equal(t, "u-2", got[0].ID)

	got = svc.Filter(members, "john d")
	require.Len(t, got, 1)

	assert.Len(t, svc.Filter(members, ""), 3)
	assert.Empty(t, svc.Filter(members, "zzz"))
}

func TestInsert(t *testing.T) {
	svc := NewService()

	text, caret := svc.Insert("Hello @Jo", 9, members[0])

	assert.Equal(t, "Hello @[John Doe]("+johnID+") ", text)
	assert.Equal(t, len([]rune(text)), caret)
}

func TestInsert_KeepsTrailingText(t *testing.T) {
	svc := NewService()

	text, caret := svc.Insert("@Él et toi", 3, members[1])

	assert.Equal(t, "@[Élodie Martin](u-2)  et toi", text)
	assert.Equal(t, len([]rune("@[Élodie Martin](u-2) ")), caret)
}

func TestInsert_NoActiveQuery(t *testing.T) {
	svc := NewService()

	text, caret := svc.Insert("Hello", 5, members[0])
	assert.Equal(t, "Hello", text)
	assert.Equal(t, 5, caret)
}

func TestParse(t *testing.T) {
	svc := NewService()

	segments := svc.Parse("Hi @[John Doe](" + johnID + ") and @[Élodie Martin](u-2)!")

	require.Len(t, segments, 5)
	assert.Equal(t, Segment{Text: "Hi "}, segments[0])
	assert.Equal(t, Segment{Text: "John Doe", IsMention: true, MemberID: johnID}, segments[1])
	assert.Equal(t, Segment{Text: " and "}, segments[2])
	assert.Equal(t, Segment{Text: "Élodie Martin", IsMention: true, MemberID: "u-2"}, segments[3])
	assert.Equal(t, Segment{Text: "!"}, segments[4])
}

func TestParse_Malformed(t *testing.T) {
	svc := NewService()

	segments := svc.Parse("@[John Doe] and @[](x)")
	require.Len(t, segments, 1)
	assert.False(t, segments[0].IsMention)
}

func TestRenderHTML(t *testing.T) {
	svc := NewService()

	out := svc.RenderHTML("Hello @[John Doe](" + johnID + ") ")

	assert.Equal(t, `Hello <strong class="mention" title="`+johnID+`">@John Doe</strong> `, out)
	assert.False(t, strings.ContainsAny(out, "[]()"))
}

func TestRenderHTML_EscapesText(t *testing.T) {
	svc := NewService()

	out := svc.RenderHTML(`<script>alert(1)</script> @[<b>x</b>](u-1)`)

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>")
}

func TestRenderTerminal(t *testing.T) {
	svc := NewService()

	out := svc.RenderTerminal("Hello @[John Doe](" + johnID + ") ")

	assert.True(t, strings.HasPrefix(out, "Hello "))
	assert.Contains(t, out, "@John Doe")
	assert.NotContains(t, out, "](")
}

func TestRenderPlain(t *testing.T) {
	svc := NewService()
	got := svc.RenderPlain("Merci @[Jean Dupont](u-1), à demain")
	assert.Equal(t, "Merci @Jean Dupont, à demain", got)
}
