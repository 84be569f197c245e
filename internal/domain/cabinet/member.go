// Package cabinet models workspace membership.
package cabinet

import (
	"fmt"
	"strings"
)

const (
	// UnknownDisplayName is shown for members without a usable profile.
	UnknownDisplayName = "Inconnu"
	// DefaultContactLabel disambiguates direct conversations when a member has no email.
	DefaultContactLabel = "Membre du cabinet"
)

type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInvited  MemberStatus = "invited"
	MemberStatusDisabled MemberStatus = "disabled"
)

// Profile is the public identity attached to a user.
type Profile struct {
	FirstName string
	LastName  string
	PhotoURL  string
}

// Member is a user's membership in a cabinet. Only active members take part
// in conversations and receive notifications.
type Member struct {
	id        string
	cabinetID string
	userID    string
	role      string
	status    MemberStatus
	email     string
	profile   *Profile
}

// ReconstructMember rebuilds a member loaded from storage.
func ReconstructMember(id, cabinetID, userID, role string, status MemberStatus, email string, profile *Profile) (*Member, error) {
	if cabinetID == "" {
		return nil, fmt.Errorf("cabinet ID is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if role == "" {
		role = "member"
	}
	return &Member{
		id:        id,
		cabinetID: cabinetID,
		userID:    userID,
		role:      role,
		status:    status,
		email:     strings.TrimSpace(email),
		profile:   profile,
	}, nil
}

func (m *Member) ID() string           { return m.id }
func (m *Member) CabinetID() string    { return m.cabinetID }
func (m *Member) UserID() string       { return m.userID }
func (m *Member) Role() string         { return m.role }
func (m *Member) Status() MemberStatus { return m.status }
func (m *Member) Email() string        { return m.email }
func (m *Member) Profile() *Profile    { return m.profile }

func (m *Member) IsActive() bool {
	return m.status == MemberStatusActive
}

// FirstName returns the profile first name or "".
func (m *Member) FirstName() string {
	if m.profile == nil {
		return ""
	}
	return strings.TrimSpace(m.profile.FirstName)
}

// LastName returns the profile last name or "".
func (m *Member) LastName() string {
	if m.profile == nil {
		return ""
	}
	return strings.TrimSpace(m.profile.LastName)
}

// DisplayName renders "First Last", falling back to "Inconnu".
func (m *Member) DisplayName() string {
	return DisplayName(m.FirstName(), m.LastName())
}

// ContactLabel returns the email, or "Membre du cabinet" when it is missing.
func (m *Member) ContactLabel() string {
	if m.email == "" {
		return DefaultContactLabel
	}
	return m.email
}

// DisplayName joins first and last names, falling back to "Inconnu" when both are blank.
func DisplayName(firstName, lastName string) string {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name == "" {
		return UnknownDisplayName
	}
	return name
}
