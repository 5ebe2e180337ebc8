// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package voice_api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	internal_orchestrator "github.com/Anand38913/Rasa/api/voice-api/internal/orchestrator"
	internal_audio_storage "github.com/Anand38913/Rasa/api/voice-api/internal/storage/audio"
	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
	"github.com/Anand38913/Rasa/config"
	"github.com/Anand38913/Rasa/pkg/commons"
)

const (
	SERVICE_NAME = "Voice Bot API"
	TWIML_TYPE   = "text/xml"
	AUDIO_TYPE   = "audio/wav"
)

type VoiceApi struct {
	cfg          *config.AppConfig
	logger       commons.Logger
	orchestrator *internal_orchestrator.Orchestrator
	audio        internal_type.AudioStore
}

type InitiateCallRequest struct {
	ToNumber string `json:"to_number"`
	Language string `json:"language"`
}

func New(cfg *config.AppConfig, logger commons.Logger, orchestrator *internal_orchestrator.Orchestrator, audio internal_type.AudioStore) *VoiceApi {
	return &VoiceApi{
		cfg:          cfg,
		logger:       logger,
		orchestrator: orchestrator,
		audio:        audio,
	}
}

func (api *VoiceApi) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": SERVICE_NAME})
}

func (api *VoiceApi) Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.orchestrator.Health(c.Request.Context()))
}

// Incoming is the call-start webhook. Outbound calls carry the language in
// the query string, inbound numbers may configure it as a form field.
func (api *VoiceApi) Incoming(c *gin.Context) {
	doc := api.orchestrator.StartCall(c.Request.Context(), internal_type.CallStartEvent{
		CallID:   c.PostForm("CallSid"),
		From:     c.PostForm("From"),
		Language: language(c),
	})
	c.Data(http.StatusOK, TWIML_TYPE, []byte(doc))
}

// Process is the gather action and the no-input redirect target.
func (api *VoiceApi) Process(c *gin.Context) {
	confidence, _ := strconv.ParseFloat(c.PostForm("Confidence"), 64)
	doc := api.orchestrator.ProcessSpeech(c.Request.Context(), internal_type.SpeechTurnEvent{
		CallID:     c.PostForm("CallSid"),
		Utterance:  c.PostForm("SpeechResult"),
		Confidence: confidence,
		Language:   language(c),
	})
	c.Data(http.StatusOK, TWIML_TYPE, []byte(doc))
}

func (api *VoiceApi) Status(c *gin.Context) {
	api.orchestrator.HandleStatus(c.Request.Context(), internal_type.StatusEvent{
		CallID: c.PostForm("CallSid"),
		Status: c.PostForm("CallStatus"),
	})
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func (api *VoiceApi) InitiateCall(c *gin.Context) {
	var req InitiateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.logger.Warnf("invalid initiate call request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	call, err := api.orchestrator.InitiateCall(c.Request.Context(), req.ToNumber, req.Language)
	if err != nil {
		if errors.Is(err, internal_orchestrator.ErrMissingNumber) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		api.logger.Errorf("error initiating call: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"call_sid": call.CallID,
		"to":       call.To,
		"language": call.Language,
	})
}

// Audio serves clips produced by the synthesizer to Twilio <Play>.
func (api *VoiceApi) Audio(c *gin.Context) {
	name := c.Param("name")
	data, err := api.audio.Get(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, internal_audio_storage.ErrAudioNotFound) || errors.Is(err, internal_audio_storage.ErrInvalidName) {
			c.JSON(http.StatusNotFound, gin.H{"error": "audio not found"})
			return
		}
		api.logger.Errorf("unable to serve audio %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to read audio"})
		return
	}
	c.Data(http.StatusOK, AUDIO_TYPE, data)
}

func language(c *gin.Context) string {
	if lang := c.PostForm("language"); lang != "" {
		return lang
	}
	return c.Query("language")
}
