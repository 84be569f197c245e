package inbox

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	chatdto "cabinet/internal/application/chat/dto"
	notificationdto "cabinet/internal/application/notification/dto"
	"cabinet/internal/domain/message"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
)

const (
	testCabinetID = "cab-1"
	aliceID       = "alice"
	bobID         = "bob"
	carolID       = "carol"
	daveID        = "dave"

	groupID       = "6f1c0a52-3b8e-4d7a-9c21-5e0f3a7b9d11"
	activeGroupID = "6f1c0a52-3b8e-4d7a-9c21-5e0f3a7b9a01"
	emptyGroupID  = "6f1c0a52-3b8e-4d7a-9c21-5e0f3a7b9e01"
	otherGroupID  = "6f1c0a52-3b8e-4d7a-9c21-5e0f3a7b9b01"
	newGroupID    = "6f1c0a52-3b8e-4d7a-9c21-5e0f3a7b9c01"
)

var base = time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

func member(id, name, contact string) *chatdto.MemberResponse {
	return &chatdto.MemberResponse{UserID: id, DisplayName: name, ContactLabel: contact}
}

type storedMessage struct {
	id     string
	sender string
	target message.Target
	body   string
	at     time.Time
}

// fakeBackend answers like the server for one viewer.
type fakeBackend struct {
	mu       sync.Mutex
	viewer   string
	members  []*chatdto.MemberResponse
	groups   []*chatdto.ConversationResponse
	messages []storedMessage
	badges   map[string]int64
	failures map[string]error
	tabsRead []string
	nextID   int
	clock    func() time.Time
}

func newFakeBackend(viewer string) *fakeBackend {
	return &fakeBackend{
		viewer:   viewer,
		badges:   map[string]int64{"documents": 0, "dossiers": 0, "clients": 0},
		failures: map[string]error{},
		clock:    func() time.Time { return base.Add(time.Hour) },
	}
}

func (b *fakeBackend) add(sender string, target message.Target, at time.Time) storedMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	m := storedMessage{id: fmt.Sprintf("m-%d", b.nextID), sender: sender, target: target, body: "msg", at: at}
	b.messages = append(b.messages, m)
	return m
}

func (b *fakeBackend) failure(op string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures[op]
}

func (b *fakeBackend) ListMembers(_ context.Context, _ string) ([]*chatdto.MemberResponse, error) {
	if err := b.failure("members"); err != nil {
		return nil, err
	}
	return b.members, nil
}

func (b *fakeBackend) ListConversations(_ context.Context, _ string) ([]*chatdto.ConversationResponse, error) {
	if err := b.failure("conversations"); err != nil {
		return nil, err
	}
	return b.groups, nil
}

func (b *fakeBackend) inConversation(key string) ([]storedMessage, error) {
	parsed, err := message.ParseConversationKey(key)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []storedMessage
	for _, m := range b.messages {
		if parsed.Includes(m.sender, m.target, b.viewer) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].at.Before(out[j].at) })
	return out, nil
}

func (b *fakeBackend) ListMessages(_ context.Context, _ string, key string) ([]*chatdto.MessageResponse, error) {
	if err := b.failure("messages"); err != nil {
		return nil, err
	}
	msgs, err := b.inConversation(key)
	if err != nil {
		return nil, err
	}
	out := make([]*chatdto.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, &chatdto.MessageResponse{ID: m.id, CabinetID: testCabinetID, SenderID: m.sender, Conversation: key, Message: m.body, CreatedAt: m.at})
	}
	return out, nil
}

func (b *fakeBackend) ConversationSummary(_ context.Context, _ string, key string, since *time.Time) (*chatdto.SummaryResponse, error) {
	if err := b.failure("summary"); err != nil {
		return nil, err
	}
	msgs, err := b.inConversation(key)
	if err != nil {
		return nil, err
	}
	resp := &chatdto.SummaryResponse{Conversation: key, HasMessages: len(msgs) > 0}
	for _, m := range msgs {
		at := m.at
		resp.LatestAt = &at
		if m.sender != b.viewer && (since == nil || m.at.After(*since)) {
			resp.Unread++
		}
	}
	return resp, nil
}

func (b *fakeBackend) SendMessage(_ context.Context, _ string, key, text string) (*chatdto.MessageResponse, error) {
	if err := b.failure("send"); err != nil {
		return nil, err
	}
	parsed, err := message.ParseConversationKey(key)
	if err != nil {
		return nil, err
	}
	m := b.add(b.viewer, parsed.Target(), b.clock())
	return &chatdto.MessageResponse{ID: m.id, CabinetID: testCabinetID, SenderID: b.viewer, Conversation: key, Message: text, CreatedAt: m.at}, nil
}

func (b *fakeBackend) NotificationBadges(_ context.Context, _ string) (*notificationdto.BadgesResponse, error) {
	if err := b.failure("badges"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	resp := &notificationdto.BadgesResponse{Tabs: map[string]int64{}}
	for k, v := range b.badges {
		resp.Tabs[k] = v
		resp.Total += v
	}
	return resp, nil
}

func (b *fakeBackend) MarkTabRead(_ context.Context, _ string, tab string) (*notificationdto.MarkReadResponse, error) {
	if err := b.failure("tab"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	n := b.badges[tab]
	b.badges[tab] = 0
	b.tabsRead = append(b.tabsRead, tab)
	return &notificationdto.MarkReadResponse{Updated: n}, nil
}

type memoryMarkers struct {
	mu       sync.Mutex
	viewed   map[string]time.Time
	selected map[string]string
}

func newMemoryMarkers() *memoryMarkers {
	return &memoryMarkers{viewed: map[string]time.Time{}, selected: map[string]string{}}
}

func (m *memoryMarkers) LastViewed(_ context.Context, cabinetID, key string) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.viewed[cabinetID+"/"+key]
	return at, ok
}

func (m *memoryMarkers) SetLastViewed(_ context.Context, cabinetID, key string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewed[cabinetID+"/"+key] = at
	return nil
}

func (m *memoryMarkers) SelectedConversation(_ context.Context, cabinetID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, ok := m.selected[cabinetID]
	return key, ok
}

func (m *memoryMarkers) SetSelectedConversation(_ context.Context, cabinetID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected[cabinetID] = key
	return nil
}

type fakeSubscription struct {
	key    string
	closed bool
}

func (s *fakeSubscription) Close() error {
	s.closed = true
	return nil
}

type fakeSubscriber struct {
	messageSubs      []*fakeSubscription
	notificationSubs []*fakeSubscription
	onMessage        func(proto.MessageData)
	onNotification   func(proto.NotificationData)
	err              error
}

func (s *fakeSubscriber) SubscribeMessages(_ context.Context, _ string, key string, handler func(proto.MessageData)) (Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	sub := &fakeSubscription{key: key}
	s.messageSubs = append(s.messageSubs, sub)
	s.onMessage = handler
	return sub, nil
}

func (s *fakeSubscriber) SubscribeNotifications(_ context.Context, _ string, handler func(proto.NotificationData)) (Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	sub := &fakeSubscription{}
	s.notificationSubs = append(s.notificationSubs, sub)
	s.onNotification = handler
	return sub, nil
}

func live(id, sender string, target message.Target, at time.Time) proto.MessageData {
	recipient, conversation := target.Columns()
	return proto.MessageData{
		ID:             id,
		CabinetID:      testCabinetID,
		SenderID:       sender,
		RecipientID:    recipient,
		ConversationID: conversation,
		Message:        "live",
		CreatedAt:      at,
	}
}
