package inbox

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	chatdto "cabinet/internal/application/chat/dto"
	inboxApp "cabinet/internal/application/inbox"
	vo "cabinet/internal/domain/notification/valueobjects"
	"cabinet/internal/shared/services/mention"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	openStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	badgeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Padding(0, 1)
	senderStyle  = lipgloss.NewStyle().Bold(true)
	selfStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	toastStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	activeTabCol = lipgloss.NewStyle().Bold(true).Underline(true)
)

// renderer writes inbox state to a terminal.
type renderer struct {
	out      io.Writer
	mentions mention.Service
	userID   string
	// members resolves a user ID to a display name.
	members func(userID string) (*chatdto.MemberResponse, bool)
}

func newRenderer(out io.Writer, userID string, members func(string) (*chatdto.MemberResponse, bool)) *renderer {
	return &renderer{
		out:      out,
		mentions: mention.NewService(),
		userID:   userID,
		members:  members,
	}
}

func (r *renderer) conversations(snap inboxApp.Snapshot) {
	fmt.Fprintln(r.out, titleStyle.Render("Conversations"))
	if !snap.MembersLoaded && len(snap.Conversations) == 0 {
		fmt.Fprintln(r.out, dimStyle.Render("  (membres non chargés)"))
		return
	}
	if len(snap.Conversations) == 0 {
		fmt.Fprintln(r.out, dimStyle.Render("  (aucune conversation)"))
		return
	}

	for _, c := range snap.Conversations {
		name := c.Name
		if c.Key == snap.OpenKey {
			name = openStyle.Render("> " + name)
		} else {
			name = "  " + name
		}

		line := name + " " + dimStyle.Render("["+c.Key+"]")
		if !c.LatestAt.IsZero() {
			line += " " + dimStyle.Render(formatTime(c.LatestAt))
		}
		if c.Unread > 0 {
			line += " " + badgeStyle.Render(fmt.Sprintf("%d", c.Unread))
		}
		fmt.Fprintln(r.out, line)
	}
	if snap.TotalUnread > 0 {
		fmt.Fprintln(r.out, dimStyle.Render(fmt.Sprintf("%d message(s) non lu(s)", snap.TotalUnread)))
	}
}

func (r *renderer) badges(snap inboxApp.Snapshot) {
	tabs := make([]string, 0, len(vo.AllTabs()))
	for _, tab := range vo.AllTabs() {
		label := tab.String()
		if label == snap.ActiveTab {
			label = activeTabCol.Render(label)
		}
		if n := snap.Badges[tab.String()]; n > 0 {
			label += " " + badgeStyle.Render(fmt.Sprintf("%d", n))
		}
		tabs = append(tabs, label)
	}
	fmt.Fprintln(r.out, titleStyle.Render("Notifications")+"  "+strings.Join(tabs, "  "))
}

func (r *renderer) transcript(messages []chatdto.MessageResponse) {
	for i := range messages {
		r.message(&messages[i])
	}
}

func (r *renderer) message(m *chatdto.MessageResponse) {
	sender := cabinetDisplayName(r.members, m.SenderID)
	style := senderStyle
	if m.SenderID == r.userID {
		style = selfStyle
	}
	fmt.Fprintf(r.out, "%s %s %s\n",
		dimStyle.Render(formatTime(m.CreatedAt)),
		style.Render(sender+":"),
		r.mentions.RenderTerminal(m.Message),
	)
}

func (r *renderer) toasts(toasts []inboxApp.Toast) {
	for _, t := range toasts {
		fmt.Fprintln(r.out, toastStyle.Render(t.Title+": "+t.Description))
	}
}

func cabinetDisplayName(lookup func(string) (*chatdto.MemberResponse, bool), userID string) string {
	if lookup != nil {
		if m, ok := lookup(userID); ok && m.DisplayName != "" {
			return m.DisplayName
		}
	}
	return "Inconnu"
}

func formatTime(t time.Time) string {
	local := t.Local()
	if sameDay(local, time.Now()) {
		return local.Format("15:04")
	}
	return local.Format("02/01 15:04")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// sortedMembers orders members by display name for the members listing.
func sortedMembers(members []*chatdto.MemberResponse) []*chatdto.MemberResponse {
	out := append([]*chatdto.MemberResponse(nil), members...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].DisplayName) < strings.ToLower(out[j].DisplayName)
	})
	return out
}
