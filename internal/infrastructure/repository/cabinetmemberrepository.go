package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cabinet/internal/domain/cabinet"
	"cabinet/internal/infrastructure/persistence/mappers"
	"cabinet/internal/infrastructure/persistence/models"
	"cabinet/internal/shared/constants"
	shareddb "cabinet/internal/shared/db"
	"cabinet/internal/shared/logger"
)

type CabinetMemberRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.MemberMapper
	logger logger.Interface
}

func NewCabinetMemberRepository(db *gorm.DB, log logger.Interface) cabinet.MemberRepository {
	return &CabinetMemberRepositoryImpl{
		db:     db,
		mapper: mappers.NewMemberMapper(),
		logger: log,
	}
}

// activeMembers joins profiles so display names resolve in one query.
func (r *CabinetMemberRepositoryImpl) activeMembers(ctx context.Context, cabinetID string) *gorm.DB {
	return shareddb.GetTxFromContext(ctx, r.db).
		Table(constants.TableCabinetMembers+" AS m").
		Select("m.*, p.first_name, p.last_name, p.photo_url").
		Joins("LEFT JOIN "+constants.TableProfiles+" p ON p.id = m.user_id").
		Where("m.cabinet_id = ?", cabinetID).
		Scopes(shareddb.ActiveMembership("m"))
}

func (r *CabinetMemberRepositoryImpl) ListActive(ctx context.Context, cabinetID string) ([]*cabinet.Member, error) {
	var rows []*models.CabinetMemberWithProfile
	if err := r.activeMembers(ctx, cabinetID).Order("m.created_at ASC, m.id ASC").Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to list cabinet members", "cabinet_id", cabinetID, "error", err)
		return nil, fmt.Errorf("failed to list cabinet members: %w", err)
	}

	members, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to map cabinet members: %w", err)
	}
	return members, nil
}

func (r *CabinetMemberRepositoryImpl) FindActive(ctx context.Context, cabinetID, userID string) (*cabinet.Member, error) {
	var rows []*models.CabinetMemberWithProfile
	if err := r.activeMembers(ctx, cabinetID).Where("m.user_id = ?", userID).Limit(1).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find cabinet member: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	member, err := r.mapper.ToEntity(rows[0])
	if err != nil {
		return nil, fmt.Errorf("failed to map cabinet member: %w", err)
	}
	return member, nil
}
