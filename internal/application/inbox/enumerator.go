package inbox

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	chatdto "cabinet/internal/application/chat/dto"
	"cabinet/internal/domain/message"
)

// summarizeFunc returns the digest of one conversation for the current viewer.
type summarizeFunc func(ctx context.Context, key string) (*chatdto.SummaryResponse, error)

// enumerate builds the ordered conversation list: the general channel, the
// viewer's groups, then every direct conversation that already holds at least
// one message. Direct conversations whose names collide get the peer's contact
// label appended. Ties in latest-message time keep emission order.
func enumerate(
	ctx context.Context,
	userID string,
	members []*chatdto.MemberResponse,
	groups []*chatdto.ConversationResponse,
	summarize summarizeFunc,
) ([]*Conversation, error) {
	out := make([]*Conversation, 0, 1+len(groups)+len(members))

	general := &Conversation{
		Key:  message.GeneralKey,
		Kind: message.KindBroadcast,
		Name: message.GeneralDisplayName,
	}
	if err := applyLatest(ctx, general, summarize); err != nil {
		return nil, err
	}
	out = append(out, general)

	for _, g := range groups {
		if !slices.Contains(g.MemberIDs, userID) {
			continue
		}
		conv := &Conversation{
			Key:       g.ID,
			Kind:      message.KindGroup,
			Name:      g.Name,
			MemberIDs: append([]string(nil), g.MemberIDs...),
		}
		if err := applyLatest(ctx, conv, summarize); err != nil {
			return nil, err
		}
		out = append(out, conv)
	}

	var directs []*Conversation
	contacts := make(map[string]string)
	for _, m := range members {
		if m.UserID == userID {
			continue
		}
		key := message.DirectConversation(m.UserID).String()
		summary, err := summarize(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize direct %s: %w", key, err)
		}
		if !summary.HasMessages {
			continue
		}
		conv := &Conversation{
			Key:    key,
			Kind:   message.KindDirect,
			Name:   m.DisplayName,
			PeerID: m.UserID,
		}
		if summary.LatestAt != nil {
			conv.LatestAt = *summary.LatestAt
		}
		directs = append(directs, conv)
		contacts[key] = m.ContactLabel
	}
	disambiguate(directs, contacts)
	out = append(out, directs...)

	sortByLatest(out)
	return out, nil
}

func applyLatest(ctx context.Context, conv *Conversation, summarize summarizeFunc) error {
	summary, err := summarize(ctx, conv.Key)
	if err != nil {
		return fmt.Errorf("failed to summarize %s: %w", conv.Key, err)
	}
	if summary.LatestAt != nil {
		conv.LatestAt = *summary.LatestAt
	} else {
		conv.LatestAt = time.Unix(0, 0).UTC()
	}
	return nil
}

// disambiguate appends " (<contact>)" to every direct conversation whose
// display name is shared with another one.
func disambiguate(directs []*Conversation, contacts map[string]string) {
	seen := make(map[string]int, len(directs))
	for _, c := range directs {
		seen[c.Name]++
	}
	for _, c := range directs {
		if seen[c.Name] > 1 {
			c.Name = c.Name + " (" + contacts[c.Key] + ")"
		}
	}
}

func sortByLatest(convs []*Conversation) {
	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].LatestAt.After(convs[j].LatestAt)
	})
}
