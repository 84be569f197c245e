package mappers

import (
	"fmt"

	"cabinet/internal/domain/cabinet"
	"cabinet/internal/infrastructure/persistence/models"
)

type MemberMapper interface {
	ToEntity(row *models.CabinetMemberWithProfile) (*cabinet.Member, error)
	ToEntities(rows []*models.CabinetMemberWithProfile) ([]*cabinet.Member, error)
}

type MemberMapperImpl struct{}

func NewMemberMapper() MemberMapper {
	return &MemberMapperImpl{}
}

func (m *MemberMapperImpl) ToEntity(row *models.CabinetMemberWithProfile) (*cabinet.Member, error) {
	if row == nil {
		return nil, nil
	}

	var profile *cabinet.Profile
	if row.FirstName != nil || row.LastName != nil || row.PhotoURL != nil {
		profile = &cabinet.Profile{
			FirstName: deref(row.FirstName),
			LastName:  deref(row.LastName),
			PhotoURL:  deref(row.PhotoURL),
		}
	}

	member, err := cabinet.ReconstructMember(
		row.ID,
		row.CabinetID,
		row.UserID,
		row.RoleCabinet,
		cabinet.MemberStatus(row.Status),
		row.Email,
		profile,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct member entity: %w", err)
	}
	return member, nil
}

func (m *MemberMapperImpl) ToEntities(rows []*models.CabinetMemberWithProfile) ([]*cabinet.Member, error) {
	return mapRows(rows, m.ToEntity, func(r *models.CabinetMemberWithProfile) string { return r.ID })
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
