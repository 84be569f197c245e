package cabinet

import "context"

// MemberRepository reads workspace membership.
type MemberRepository interface {
	// ListActive returns active members with their profiles.
	ListActive(ctx context.Context, cabinetID string) ([]*Member, error)
	// FindActive returns the caller's active membership, or nil when there is none.
	FindActive(ctx context.Context, cabinetID, userID string) (*Member, error)
}
