package usecases

import (
	"context"
	"fmt"

	"cabinet/internal/application/notification/dto"
	"cabinet/internal/domain/notification"
	vo "cabinet/internal/domain/notification/valueobjects"
	"cabinet/internal/shared/logger"
)

type GetBadgesUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewGetBadgesUseCase(repo notification.Repository, logger logger.Interface) *GetBadgesUseCase {
	return &GetBadgesUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute folds the unread counts per notification type into tab badges.
// Types that belong to no tab are ignored.
func (uc *GetBadgesUseCase) Execute(ctx context.Context, cabinetID, recipientID string) (*dto.BadgesResponse, error) {
	counts, err := uc.repo.CountUnreadByType(ctx, cabinetID, recipientID)
	if err != nil {
		uc.logger.Errorw("failed to count unread notifications", "cabinet_id", cabinetID, "recipient_id", recipientID, "error", err)
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	resp := &dto.BadgesResponse{Tabs: make(map[string]int64, len(vo.AllTabs()))}
	for _, tab := range vo.AllTabs() {
		resp.Tabs[tab.String()] = 0
	}
	for nt, n := range counts {
		tab, ok := vo.TabOf(nt)
		if !ok {
			continue
		}
		resp.Tabs[tab.String()] += n
		resp.Total += n
	}
	return resp, nil
}
