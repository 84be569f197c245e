package inbox

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"cabinet/internal/shared/services/mention"
)

// ErrAmbiguousMention is returned when an "@query" designates several members.
var ErrAmbiguousMention = stderrors.New("ambiguous mention")

// ResolveMentions replaces every "@query" word of text with the mention token
// of the member it designates. Underscores in a query stand for spaces, so
// "@bob_durand" reaches "Bob Durand". A query matching nobody is left as
// typed. A query matching several members resolves only when one of them has
// exactly that full name; otherwise ErrAmbiguousMention lists the candidates.
func (in *Inbox) ResolveMentions(text string) (string, error) {
	in.mu.Lock()
	candidates := in.mentionCandidatesLocked()
	in.mu.Unlock()

	runes := []rune(text)
	for caret := 0; caret <= len(runes); caret++ {
		if caret < len(runes) && !unicode.IsSpace(runes[caret]) {
			continue
		}
		end := caret
		for end > 0 && isTrailingPunct(runes[end-1]) {
			end--
		}

		q, ok := in.mentions.ActiveQuery(string(runes), end)
		if !ok || q.Text == "" || strings.HasPrefix(q.Text, "[") {
			continue
		}
		if q.Start > 0 && !unicode.IsSpace(runes[q.Start-1]) {
			// e-mail addresses and the like
			continue
		}

		query := strings.ReplaceAll(q.Text, "_", " ")
		picked, err := pickCandidate(in.mentions.Filter(candidates, query), query)
		if err != nil {
			return "", in.fail(msgAmbiguousMention, fmt.Errorf("@%s: %w", q.Text, err))
		}
		if picked == nil {
			continue
		}

		out, next := in.mentions.Insert(string(runes), end, *picked)
		// Insert adds a separating space; what follows the query already separates.
		outRunes := []rune(out)
		runes = append(outRunes[:next-1:next-1], outRunes[next:]...)
		caret = next - 1
	}
	return string(runes), nil
}

func (in *Inbox) mentionCandidatesLocked() []mention.Candidate {
	out := make([]mention.Candidate, 0, len(in.members))
	for _, m := range in.members {
		if m.UserID == in.userID {
			continue
		}
		c := mention.Candidate{ID: m.UserID, FirstName: m.FirstName, LastName: m.LastName}
		if c.FullName() == "" {
			c.FirstName = m.DisplayName
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName() != out[j].FullName() {
			return out[i].FullName() < out[j].FullName()
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func pickCandidate(matches []mention.Candidate, query string) (*mention.Candidate, error) {
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	}

	folder := cases.Fold()
	var exact []mention.Candidate
	for _, c := range matches {
		if folder.String(c.FullName()) == folder.String(query) {
			exact = append(exact, c)
		}
	}
	if len(exact) == 1 {
		return &exact[0], nil
	}

	names := make([]string, 0, len(matches))
	for _, c := range matches {
		names = append(names, c.FullName())
	}
	return nil, fmt.Errorf("%w: %s", ErrAmbiguousMention, strings.Join(names, ", "))
}

func isTrailingPunct(r rune) bool {
	switch r {
	case ',', '.', ';', ':', '!', '?', ')':
		return true
	}
	return false
}
