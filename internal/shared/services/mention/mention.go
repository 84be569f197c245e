// Package mention implements the @-mention composer helpers and renderers for
// chat message bodies. A mention is stored inline as "@[First Last](member-id)".
package mention

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
)

var tokenPattern = regexp.MustCompile(`@\[([^\]]+)\]\(([^)]+)\)`)

// Candidate is a member that can be mentioned.
type Candidate struct {
	ID        string
	FirstName string
	LastName  string
}

// FullName joins the candidate's names with a single space.
func (c Candidate) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// Segment is a piece of a parsed message body.
type Segment struct {
	Text      string
	IsMention bool
	// MemberID is set for mention segments; Text then holds the display name.
	MemberID string
}

// Query is an in-progress mention in the composer.
type Query struct {
	Text string
	// Start is the rune offset of the '@'.
	Start int
}

// Service parses and renders mention tokens.
type Service interface {
	ActiveQuery(text string, caret int) (Query, bool)
	Filter(candidates []Candidate, query string) []Candidate
	Insert(text string, caret int, candidate Candidate) (string, int)
	Parse(text string) []Segment
	RenderHTML(text string) string
	RenderTerminal(text string) string
	RenderPlain(text string) string
}

type serviceImpl struct {
	policy    *bluemonday.Policy
	highlight lipgloss.Style
}

func NewService() Service {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("strong")
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^mention$`)).OnElements("strong")
	policy.AllowAttrs("title").OnElements("strong")

	return &serviceImpl{
		policy:    policy,
		highlight: lipgloss.NewStyle().Bold(true),
	}
}

// ActiveQuery reports the mention being typed at caret (a rune offset): the
// nearest '@' before the caret with no whitespace between it and the caret.
func (s *serviceImpl) ActiveQuery(text string, caret int) (Query, bool) {
	runes := []rune(text)
	if caret < 0 || caret > len(runes) {
		return Query{}, false
	}
	for i := caret - 1; i >= 0; i-- {
		r := runes[i]
		if r == '@' {
			return Query{Text: string(runes[i+1 : caret]), Start: i}, true
		}
		if unicode.IsSpace(r) {
			return Query{}, false
		}
	}
	return Query{}, false
}

// Filter keeps candidates whose first, last or full name contains query,
// compared with Unicode case folding. An empty query keeps everyone.
func (s *serviceImpl) Filter(candidates []Candidate, query string) []Candidate {
	folder := cases.Fold()
	needle := folder.String(query)
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if needle == "" ||
			strings.Contains(folder.String(c.FirstName), needle) ||
			strings.Contains(folder.String(c.LastName), needle) ||
			strings.Contains(folder.String(c.FullName()), needle) {
			out = append(out, c)
		}
	}
	return out
}

// Insert replaces the active "@query" span with a mention token followed by one
// space. It returns the new text and the caret placed after that space. Text is
// returned unchanged when no mention is active at caret.
func (s *serviceImpl) Insert(text string, caret int, candidate Candidate) (string, int) {
	q, ok := s.ActiveQuery(text, caret)
	if !ok {
		return text, caret
	}
	runes := []rune(text)
	token := []rune("@[" + candidate.FullName() + "](" + candidate.ID + ") ")

	out := make([]rune, 0, len(runes)+len(token))
	out = append(out, runes[:q.Start]...)
	out = append(out, token...)
	out = append(out, runes[caret:]...)

	return string(out), q.Start + len(token)
}

// Parse splits text into plain and mention segments in one pass.
func (s *serviceImpl) Parse(text string) []Segment {
	var segments []Segment
	last := 0
	for _, loc := range tokenPattern.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Text: text[last:loc[0]]})
		}
		segments = append(segments, Segment{
			Text:      text[loc[2]:loc[3]],
			IsMention: true,
			MemberID:  text[loc[4]:loc[5]],
		})
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// RenderHTML escapes plain text and renders each mention as a styled span.
func (s *serviceImpl) RenderHTML(text string) string {
	var b strings.Builder
	for _, seg := range s.Parse(text) {
		if !seg.IsMention {
			b.WriteString(html.EscapeString(seg.Text))
			continue
		}
		b.WriteString(`<strong class="mention" title="`)
		b.WriteString(html.EscapeString(seg.MemberID))
		b.WriteString(`">@`)
		b.WriteString(html.EscapeString(seg.Text))
		b.WriteString(`</strong>`)
	}
	return s.policy.Sanitize(b.String())
}

// RenderTerminal renders mentions in bold for terminal output.
func (s *serviceImpl) RenderTerminal(text string) string {
	var b strings.Builder
	for _, seg := range s.Parse(text) {
		if seg.IsMention {
			b.WriteString(s.highlight.Render("@" + seg.Text))
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// RenderPlain replaces each mention token with "@Name".
func (s *serviceImpl) RenderPlain(text string) string {
	var b strings.Builder
	for _, seg := range s.Parse(text) {
		if seg.IsMention {
			b.WriteString("@")
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}
