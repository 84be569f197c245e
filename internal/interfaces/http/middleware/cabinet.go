package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabinet/internal/domain/cabinet"
	"cabinet/internal/shared/constants"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/utils"
)

// CabinetMemberMiddleware admits only active members of the cabinet named
// in the :cabinet_id path parameter. Must run after RequireAuth.
type CabinetMemberMiddleware struct {
	memberRepo cabinet.MemberRepository
	logger     logger.Interface
}

func NewCabinetMemberMiddleware(memberRepo cabinet.MemberRepository, logger logger.Interface) *CabinetMemberMiddleware {
	return &CabinetMemberMiddleware{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (m *CabinetMemberMiddleware) RequireActiveMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		cabinetID, err := utils.ParseUUIDParam(c, "cabinet_id", "cabinet")
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		userID, err := utils.GetUserID(c)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		member, err := m.memberRepo.FindActive(c.Request.Context(), cabinetID, userID)
		if err != nil {
			m.logger.Errorw("failed to load cabinet membership",
				"cabinet_id", cabinetID,
				"user_id", userID,
				"error", err,
			)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to verify cabinet membership")
			c.Abort()
			return
		}
		if member == nil {
			m.logger.Warnw("access denied: not an active cabinet member",
				"cabinet_id", cabinetID,
				"user_id", userID,
			)
			utils.ErrorResponse(c, http.StatusForbidden, "you are not an active member of this cabinet")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCabinet, cabinetID)
		c.Set(constants.ContextKeyMember, member)

		c.Next()
	}
}
