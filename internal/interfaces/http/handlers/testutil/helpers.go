// Package testutil builds gin contexts for handler tests without a router.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"net/url"

	"github.com/gin-gonic/gin"

	"cabinet/internal/domain/cabinet"
	"cabinet/internal/shared/constants"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestContext returns a context for method and path. A non-nil body is sent as JSON.
func NewTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if body == nil {
		c.Request = httptest.NewRequest(method, path, nil)
		return c, w
	}

	raw, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

// SetAuthContext stands in for the auth middleware.
func SetAuthContext(c *gin.Context, userID string) {
	c.Set(constants.ContextKeyUserID, userID)
}

// SetMemberContext stands in for the auth and cabinet membership middleware together.
func SetMemberContext(c *gin.Context, member *cabinet.Member) {
	SetAuthContext(c, member.UserID())
	c.Set(constants.ContextKeyCabinet, member.CabinetID())
	c.Set(constants.ContextKeyMember, member)
}

func NewMember(cabinetID, userID, role string) *cabinet.Member {
	m, err := cabinet.ReconstructMember("m-"+userID, cabinetID, userID, role, cabinet.MemberStatusActive, "", nil)
	if err != nil {
		panic(err)
	}
	return m
}

func SetURLParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

func SetQueryParams(c *gin.Context, params map[string]string) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	c.Request.URL.RawQuery = q.Encode()
}

// APIResponse is the response envelope with data left raw for a second decode.
type APIResponse struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data,omitempty"`
	Error   *utils.ErrorInfo `json:"error,omitempty"`
	Message string           `json:"message,omitempty"`
}

func ParseResponse(w *httptest.ResponseRecorder, target any) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

func NewMockLogger() logger.Interface {
	return logger.NewNopLogger()
}
