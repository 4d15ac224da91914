package relay

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meetbot/provider"
	"meetbot/types"
)

// writeError converts a terminal failure into the boundary error shape. The
// status code comes from the provider when it supplied one (a 404 passes
// through as 404); everything else becomes a generic server error. The
// message prefers the provider's error field over raw error text.
func (s *Server) writeError(c *gin.Context, err error) {
	status := provider.StatusCode(err, http.StatusInternalServerError)
	if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}

	msg := err.Error()
	var apiErr *provider.APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}

	s.log.Error().
		Err(err).
		Int("status", status).
		Str("path", c.FullPath()).
		Msg("request failed")

	c.JSON(status, types.ErrorResponse{Error: msg})
}
