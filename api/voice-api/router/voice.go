package voice_routers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	voiceApi "github.com/Anand38913/Rasa/api/voice-api/api/voice"
	internal_orchestrator "github.com/Anand38913/Rasa/api/voice-api/internal/orchestrator"
	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
	"github.com/Anand38913/Rasa/config"
	"github.com/Anand38913/Rasa/pkg/commons"
)

func HealthCheckRoutes(cfg *config.AppConfig, engine *gin.Engine, logger commons.Logger, orchestrator *internal_orchestrator.Orchestrator) {
	logger.Info("Internal HealthCheckRoutes added to engine.")
	apiv1 := engine.Group("")
	hcApi := voiceApi.New(cfg, logger, orchestrator, nil)
	{
		apiv1.GET("/", hcApi.Home)
		apiv1.GET("/health", hcApi.Health)
	}
}

func VoiceApiRoutes(cfg *config.AppConfig, engine *gin.Engine, logger commons.Logger, orchestrator *internal_orchestrator.Orchestrator, audio internal_type.AudioStore) {
	logger.Info("Internal VoiceApiRoutes added to engine.")
	api := voiceApi.New(cfg, logger, orchestrator, audio)
	voice := engine.Group("/voice")
	{
		voice.POST("/incoming", api.Incoming)
		voice.POST("/process", api.Process)
		voice.POST("/status", api.Status)
	}
	engine.POST("/call/initiate", api.InitiateCall)
	engine.GET("/audio/:name", api.Audio)
}

func MetricsRoutes(engine *gin.Engine, logger commons.Logger) {
	logger.Info("Internal MetricsRoutes added to engine.")
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
