package voice_routers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Anand38913/Rasa/config"
	"github.com/Anand38913/Rasa/pkg/commons"
	"github.com/Anand38913/Rasa/pkg/utils"
)

// NewEngine builds the gin engine with recovery, cors and request logging.
func NewEngine(cfg *config.AppConfig, logger commons.Logger) *gin.Engine {
	if utils.FromEnvironmentStr(cfg.Env) == utils.PRODUCTION {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())
	engine.Use(requestLogger(logger))
	return engine
}

func requestLogger(logger commons.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugw("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}
