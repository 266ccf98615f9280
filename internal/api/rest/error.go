package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-lifecycle-bridge/internal/api/shared/result"
	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/logger"
)

// respond writes the envelope of an operation outcome with its status as HTTP status
func respond(c *gin.Context, status int, data interface{}, err error) {
	if err != nil {
		if domain.AsError(err).Kind == domain.KindInternal {
			logger.ErrorCtx(c.Request.Context(), err,
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
			)
		} else {
			logger.DebugCtx(c.Request.Context(), "Request rejected",
				zap.Error(err),
				zap.String("path", c.FullPath()),
			)
		}
	}

	r := result.Of(status, data, err)
	c.JSON(r.Status, r)
}
