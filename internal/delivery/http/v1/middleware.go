package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDCtxKey = "user_id"

// HandleAuthMiddleware extracts the bearer access token,
// validates it and injects the subject user ID into the
// context. Handlers behind it never see the token itself.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Error().Msg("authorization header required")
		abort(c, newUnauthorizedError("authorization header required"))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Error().Msg("invalid authorization header")
		abort(c, newUnauthorizedError("invalid authorization header"))
		return
	}

	userID, err := h.tokens.ParseAccessToken(parts[1])
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to parse access token")
		abort(c, newUnauthorizedError("invalid or missing token"))
		return
	}

	c.Set(userIDCtxKey, userID)
	c.Next()
}

func userIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(userIDCtxKey)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// mustUserID aborts with 401 when the middleware did not run
// or resolved an empty identity.
func (h *handlerImpl) mustUserID(c *gin.Context) (string, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return "", false
	}
	return userID, true
}
