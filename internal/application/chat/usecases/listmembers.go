package usecases

import (
	"context"
	"fmt"

	"cabinet/internal/application/chat/dto"
	"cabinet/internal/domain/cabinet"
	"cabinet/internal/shared/logger"
)

type ListMembersUseCase struct {
	memberRepo cabinet.MemberRepository
	logger     logger.Interface
}

func NewListMembersUseCase(memberRepo cabinet.MemberRepository, logger logger.Interface) *ListMembersUseCase {
	return &ListMembersUseCase{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (uc *ListMembersUseCase) Execute(ctx context.Context, cabinetID string) ([]*dto.MemberResponse, error) {
	members, err := uc.memberRepo.ListActive(ctx, cabinetID)
	if err != nil {
		uc.logger.Errorw("failed to list members", "cabinet_id", cabinetID, "error", err)
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return dto.ToMemberResponses(members), nil
}
