// Package inbox holds the client-side view of a cabinet's conversations:
// the ordered conversation list, unread counts, the open transcript and the
// notification badges. Every external event has one entry point on Inbox.
package inbox

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	chatdto "cabinet/internal/application/chat/dto"
	"cabinet/internal/domain/message"
	vo "cabinet/internal/domain/notification/valueobjects"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/services/mention"
)

// ErrNoConversationOpen is returned by Send before any conversation is selected.
var ErrNoConversationOpen = stderrors.New("no conversation is open")

// Options identifies whose inbox this is.
type Options struct {
	CabinetID string
	UserID    string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Inbox is the live state of one member's view of a cabinet. It is safe for
// concurrent use by the realtime callbacks and the caller.
type Inbox struct {
	cabinetID  string
	userID     string
	backend    Backend
	markers    MarkerStore
	subscriber Subscriber
	mentions   mention.Service
	logger     logger.Interface
	now        func() time.Time

	mu            sync.Mutex
	members       map[string]*chatdto.MemberResponse
	membersLoaded bool
	conversations []*Conversation
	unread        *unreadCounter
	applied       *recentIDs
	openKey       string
	transcript    []*chatdto.MessageResponse
	badges        map[string]int64
	activeTab     string
	toasts        []Toast

	messageSub      Subscription
	notificationSub Subscription
}

// New returns an empty inbox; call Refresh to load it. A nil subscriber
// disables the realtime streams.
func New(opts Options, backend Backend, markers MarkerStore, subscriber Subscriber, log logger.Interface) *Inbox {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Inbox{
		cabinetID:  opts.CabinetID,
		userID:     opts.UserID,
		backend:    backend,
		markers:    markers,
		subscriber: subscriber,
		mentions:   mention.NewService(),
		logger:     log,
		now:        now,
		members:    make(map[string]*chatdto.MemberResponse),
		unread:     newUnreadCounter(),
		applied:    newRecentIDs(maxAppliedIDs),
		badges:     make(map[string]int64),
	}
}

// Refresh is the authoritative reconciliation: it reloads members, rebuilds
// the conversation list, recounts unread messages against the read markers
// and reloads the notification badges. Live increments applied since the
// previous refresh are replaced. While the member list is empty the
// conversation list is left untouched.
func (in *Inbox) Refresh(ctx context.Context) error {
	members, err := in.backend.ListMembers(ctx, in.cabinetID)
	if err != nil {
		return in.fail(msgLoadMembersFailed, err)
	}

	in.mu.Lock()
	in.setMembersLocked(members)
	in.mu.Unlock()

	if len(members) > 0 {
		if err := in.reconcileConversations(ctx, members); err != nil {
			return err
		}
	}
	return in.reloadBadges(ctx)
}

func (in *Inbox) reconcileConversations(ctx context.Context, members []*chatdto.MemberResponse) error {
	groups, err := in.backend.ListConversations(ctx, in.cabinetID)
	if err != nil {
		return in.fail(msgLoadConversationsFailed, err)
	}

	counts := make(map[string]int64)
	summarize := func(ctx context.Context, key string) (*chatdto.SummaryResponse, error) {
		var since *time.Time
		if at, ok := in.markers.LastViewed(ctx, in.cabinetID, key); ok {
			since = &at
		}
		summary, err := in.backend.ConversationSummary(ctx, in.cabinetID, key, since)
		if err != nil {
			return nil, err
		}
		counts[key] = summary.Unread
		return summary, nil
	}

	convs, err := enumerate(ctx, in.userID, members, groups, summarize)
	if err != nil {
		return in.fail(msgLoadConversationsFailed, err)
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	in.conversations = convs
	if in.openKey != "" && in.findLocked(in.openKey) == nil {
		// The open conversation may be a direct one without messages yet.
		if conv := in.newConversationLocked(in.openKey); conv != nil {
			in.insertConversationLocked(conv)
		}
	}
	in.unread.reset(counts, in.openKey)

	in.logger.Debugw("inbox reconciled", "cabinet_id", in.cabinetID, "conversations", len(convs), "unread", in.unread.total())
	return nil
}

func (in *Inbox) reloadBadges(ctx context.Context) error {
	badges, err := in.backend.NotificationBadges(ctx, in.cabinetID)
	if err != nil {
		return in.fail(msgLoadBadgesFailed, err)
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	in.badges = make(map[string]int64, len(badges.Tabs))
	for tab, n := range badges.Tabs {
		in.badges[tab] = n
	}
	return nil
}

// Select opens a conversation: it loads the transcript, moves the live
// message stream to it, stamps its read marker with the current time and
// remembers it as the selected conversation of the cabinet.
func (in *Inbox) Select(ctx context.Context, key string) error {
	parsed, err := message.ParseConversationKey(key)
	if err != nil {
		return in.fail(msgLoadMessagesFailed, err)
	}
	if parsed.Kind() == message.KindDirect && parsed.PeerID() == in.userID {
		return in.fail(msgLoadMessagesFailed, fmt.Errorf("cannot open a direct conversation with yourself"))
	}
	key = parsed.String()

	transcript, err := in.backend.ListMessages(ctx, in.cabinetID, key)
	if err != nil {
		return in.fail(msgLoadMessagesFailed, err)
	}

	var sub Subscription
	if in.subscriber != nil {
		sub, err = in.subscriber.SubscribeMessages(ctx, in.cabinetID, key, in.HandleMessageInserted)
		if err != nil {
			// Live updates stay off until the next selection.
			_ = in.fail(msgSubscribeFailed, err)
			sub = nil
		}
	}

	openedAt := in.now().UTC()
	if err := in.markers.SetLastViewed(ctx, in.cabinetID, key, openedAt); err != nil {
		in.logger.Warnw("failed to store read marker", "conversation", key, "error", err)
	}
	if err := in.markers.SetSelectedConversation(ctx, in.cabinetID, key); err != nil {
		in.logger.Warnw("failed to store selected conversation", "conversation", key, "error", err)
	}

	in.mu.Lock()
	previous := in.messageSub
	in.messageSub = sub
	in.openKey = key
	in.transcript = transcript
	in.unread.clear(key)
	if in.findLocked(key) == nil {
		if conv := in.newConversationLocked(key); conv != nil {
			in.insertConversationLocked(conv)
		}
	}
	in.mu.Unlock()

	if previous != nil {
		if err := previous.Close(); err != nil {
			in.logger.Debugw("failed to close message stream", "error", err)
		}
	}

	in.logger.Infow("conversation opened", "cabinet_id", in.cabinetID, "conversation", key, "messages", len(transcript))
	return nil
}

// RestoreSelection reopens the conversation selected last time, if any.
func (in *Inbox) RestoreSelection(ctx context.Context) (bool, error) {
	key, ok := in.markers.SelectedConversation(ctx, in.cabinetID)
	if !ok {
		return false, nil
	}
	return true, in.Select(ctx, key)
}

// HandleMessageInserted applies one live message. A message in the open
// conversation is appended to the transcript and re-stamps the read marker.
// A message from someone else in another conversation adds one to its unread
// count and moves it to the front. First-contact direct messages from a known
// member insert the conversation; unknown groups wait for the next Refresh.
func (in *Inbox) HandleMessageInserted(msg proto.MessageData) {
	if msg.CabinetID != in.cabinetID {
		return
	}
	target, err := message.TargetFromColumns(msg.RecipientID, msg.ConversationID)
	if err != nil {
		in.logger.Warnw("ignoring malformed live message", "message_id", msg.ID, "error", err)
		return
	}
	key, ok := message.KeyFor(msg.SenderID, target, in.userID)
	if !ok {
		return
	}
	k := key.String()

	in.mu.Lock()
	// Overlapping streams during Select can deliver the same message twice.
	if !in.applied.add(msg.ID) {
		in.mu.Unlock()
		return
	}
	if k == in.openKey {
		in.appendTranscriptLocked(liveMessageResponse(msg, k))
		in.touchLocked(k, msg.CreatedAt)
		in.mu.Unlock()

		if err := in.markers.SetLastViewed(context.Background(), in.cabinetID, k, in.now().UTC()); err != nil {
			in.logger.Warnw("failed to store read marker", "conversation", k, "error", err)
		}
		return
	}
	defer in.mu.Unlock()

	if msg.SenderID == in.userID {
		in.touchLocked(k, msg.CreatedAt)
		return
	}

	if in.findLocked(k) == nil {
		if key.Kind() != message.KindDirect {
			return
		}
		conv := in.newConversationLocked(k)
		if conv == nil {
			return
		}
		in.insertConversationLocked(conv)
	}
	in.unread.increment(k)
	in.touchLocked(k, msg.CreatedAt)
}

// HandleNotificationChanged reloads the badges after a change to the caller's
// notification log.
func (in *Inbox) HandleNotificationChanged(ctx context.Context, change proto.NotificationData) error {
	if change.RecipientID != "" && change.RecipientID != in.userID {
		return nil
	}
	return in.reloadBadges(ctx)
}

// SwitchTab marks every unread notification of the tab read and zeroes its badge.
func (in *Inbox) SwitchTab(ctx context.Context, tab string) error {
	t, err := vo.NewTab(tab)
	if err != nil {
		return in.fail(msgMarkReadFailed, err)
	}
	if _, err := in.backend.MarkTabRead(ctx, in.cabinetID, t.String()); err != nil {
		return in.fail(msgMarkReadFailed, err)
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	in.activeTab = t.String()
	in.badges[t.String()] = 0
	return nil
}

// Send posts text to the open conversation.
func (in *Inbox) Send(ctx context.Context, text string) (*chatdto.MessageResponse, error) {
	in.mu.Lock()
	key := in.openKey
	in.mu.Unlock()

	if key == "" {
		return nil, in.fail(msgNoConversationOpen, ErrNoConversationOpen)
	}

	sent, err := in.backend.SendMessage(ctx, in.cabinetID, key, text)
	if err != nil {
		return nil, in.fail(msgSendFailed, err)
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.openKey == key {
		in.appendTranscriptLocked(sent)
	}
	if in.findLocked(key) == nil {
		if conv := in.newConversationLocked(key); conv != nil {
			in.insertConversationLocked(conv)
		}
	}
	in.touchLocked(key, sent.CreatedAt)
	return sent, nil
}

// WatchNotifications opens the notification stream; each change reloads the badges.
func (in *Inbox) WatchNotifications(ctx context.Context) error {
	if in.subscriber == nil {
		return nil
	}
	sub, err := in.subscriber.SubscribeNotifications(ctx, in.cabinetID, func(change proto.NotificationData) {
		if err := in.HandleNotificationChanged(ctx, change); err != nil {
			in.logger.Debugw("failed to reload badges", "error", err)
		}
	})
	if err != nil {
		return in.fail(msgSubscribeFailed, err)
	}

	in.mu.Lock()
	previous := in.notificationSub
	in.notificationSub = sub
	in.mu.Unlock()

	if previous != nil {
		_ = previous.Close()
	}
	return nil
}

// Close tears down both realtime streams. The inbox state stays readable.
func (in *Inbox) Close() error {
	in.mu.Lock()
	subs := []Subscription{in.messageSub, in.notificationSub}
	in.messageSub = nil
	in.notificationSub = nil
	in.mu.Unlock()

	var errs []error
	for _, sub := range subs {
		if sub == nil {
			continue
		}
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// TotalUnread sums the unread counts of every conversation.
func (in *Inbox) TotalUnread() int64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.unread.total()
}

// Toasts drains the pending user-facing failures.
func (in *Inbox) Toasts() []Toast {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := in.toasts
	in.toasts = nil
	return out
}

// Snapshot is a consistent copy of the inbox state.
type Snapshot struct {
	Conversations []Conversation
	OpenKey       string
	Transcript    []chatdto.MessageResponse
	Badges        map[string]int64
	ActiveTab     string
	TotalUnread   int64
	MembersLoaded bool
}

// Snapshot copies the current state for rendering.
func (in *Inbox) Snapshot() Snapshot {
	in.mu.Lock()
	defer in.mu.Unlock()

	snap := Snapshot{
		Conversations: make([]Conversation, 0, len(in.conversations)),
		OpenKey:       in.openKey,
		Transcript:    make([]chatdto.MessageResponse, 0, len(in.transcript)),
		Badges:        make(map[string]int64, len(in.badges)),
		ActiveTab:     in.activeTab,
		TotalUnread:   in.unread.total(),
		MembersLoaded: in.membersLoaded,
	}
	for _, c := range in.conversations {
		conv := c.clone()
		conv.Unread = in.unread.get(c.Key)
		snap.Conversations = append(snap.Conversations, conv)
	}
	for _, m := range in.transcript {
		snap.Transcript = append(snap.Transcript, *m)
	}
	for tab, n := range in.badges {
		snap.Badges[tab] = n
	}
	return snap
}

// Member returns a loaded member by user ID.
func (in *Inbox) Member(userID string) (*chatdto.MemberResponse, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	m, ok := in.members[userID]
	return m, ok
}

func (in *Inbox) fail(description string, err error) error {
	in.logger.Warnw("inbox operation failed", "cabinet_id", in.cabinetID, "reason", description, "error", err)

	in.mu.Lock()
	defer in.mu.Unlock()
	in.toasts = append(in.toasts, Toast{Title: toastErrorTitle, Description: description, At: in.now()})
	if len(in.toasts) > maxToasts {
		in.toasts = in.toasts[len(in.toasts)-maxToasts:]
	}
	return err
}

func (in *Inbox) setMembersLocked(members []*chatdto.MemberResponse) {
	in.members = make(map[string]*chatdto.MemberResponse, len(members))
	for _, m := range members {
		in.members[m.UserID] = m
	}
	in.membersLoaded = len(members) > 0
}

func (in *Inbox) findLocked(key string) *Conversation {
	for _, c := range in.conversations {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// newConversationLocked builds a list entry for a conversation that is not
// listed yet. Only direct conversations with a known member qualify.
func (in *Inbox) newConversationLocked(key string) *Conversation {
	parsed, err := message.ParseConversationKey(key)
	if err != nil || parsed.Kind() != message.KindDirect {
		return nil
	}
	peer, ok := in.members[parsed.PeerID()]
	if !ok {
		return nil
	}
	return &Conversation{
		Key:    key,
		Kind:   message.KindDirect,
		Name:   peer.DisplayName,
		PeerID: peer.UserID,
	}
}

// insertConversationLocked puts conv at the front of the list and re-applies
// the duplicate-name rule to the direct conversations.
func (in *Inbox) insertConversationLocked(conv *Conversation) {
	in.conversations = append([]*Conversation{conv}, in.conversations...)
	if conv.Kind != message.KindDirect {
		return
	}

	var directs []*Conversation
	contacts := make(map[string]string)
	for _, c := range in.conversations {
		if c.Kind != message.KindDirect {
			continue
		}
		peer, ok := in.members[c.PeerID]
		if !ok {
			continue
		}
		c.Name = peer.DisplayName
		contacts[c.Key] = peer.ContactLabel
		directs = append(directs, c)
	}
	disambiguate(directs, contacts)
}

// touchLocked records a newer message time and moves the conversation to the front.
func (in *Inbox) touchLocked(key string, at time.Time) {
	idx := -1
	for i, c := range in.conversations {
		if c.Key == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	conv := in.conversations[idx]
	if at.After(conv.LatestAt) {
		conv.LatestAt = at
	}
	copy(in.conversations[1:idx+1], in.conversations[:idx])
	in.conversations[0] = conv
}

func (in *Inbox) appendTranscriptLocked(m *chatdto.MessageResponse) {
	for _, existing := range in.transcript {
		if existing.ID == m.ID {
			return
		}
	}
	in.transcript = append(in.transcript, m)
}

func liveMessageResponse(msg proto.MessageData, key string) *chatdto.MessageResponse {
	return &chatdto.MessageResponse{
		ID:             msg.ID,
		CabinetID:      msg.CabinetID,
		SenderID:       msg.SenderID,
		RecipientID:    msg.RecipientID,
		ConversationID: msg.ConversationID,
		Conversation:   key,
		Message:        msg.Message,
		CreatedAt:      msg.CreatedAt,
	}
}
