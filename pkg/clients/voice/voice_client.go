// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package voice_client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	commons "github.com/Anand38913/Rasa/pkg/commons"
)

const (
	INITIATE_PATH   = "/call/initiate"
	DEFAULT_TIMEOUT = 30 * time.Second
)

type InitiateCallRequest struct {
	ToNumber string `json:"to_number"`
	Language string `json:"language"`
}

type InitiateCallResponse struct {
	Status   string `json:"status"`
	CallSid  string `json:"call_sid"`
	To       string `json:"to"`
	Language string `json:"language"`
}

// VoiceServiceError is returned when the service answers with a non 2xx
// status.
type VoiceServiceError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e VoiceServiceError) Error() string {
	return fmt.Sprintf("voice service returned %d: %s", e.StatusCode, e.Message)
}

type VoiceServiceClient interface {
	InitiateCall(ctx context.Context, toNumber, language string) (*InitiateCallResponse, error)
}

type voiceServiceClient struct {
	logger commons.Logger
	client *resty.Client
}

func NewVoiceServiceClient(logger commons.Logger, serverUrl string, timeout time.Duration) VoiceServiceClient {
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}
	return &voiceServiceClient{
		logger: logger,
		client: resty.New().
			SetBaseURL(strings.TrimRight(serverUrl, "/")).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

func (client *voiceServiceClient) InitiateCall(ctx context.Context, toNumber, language string) (*InitiateCallResponse, error) {
	client.logger.Infof("initiating call to %s in %s", toNumber, language)
	resp, err := client.client.R().
		SetContext(ctx).
		SetBody(InitiateCallRequest{ToNumber: toNumber, Language: language}).
		Post(INITIATE_PATH)
	if err != nil {
		return nil, fmt.Errorf("could not connect to voice service: %w", err)
	}
	if !resp.IsSuccess() {
		apiErr := VoiceServiceError{StatusCode: resp.StatusCode()}
		if json.Unmarshal(resp.Body(), &apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = resp.String()
		}
		return nil, apiErr
	}

	var out InitiateCallResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("unable to decode initiate call response: %w", err)
	}
	return &out, nil
}
