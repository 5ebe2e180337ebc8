// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_twilio_telephony

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"

	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
	"github.com/Anand38913/Rasa/config"
	"github.com/Anand38913/Rasa/pkg/commons"
)

const (
	INCOMING_PATH = "/voice/incoming"
	PROCESS_PATH  = "/voice/process"
	STATUS_PATH   = "/voice/status"
)

var statusCallbackEvents = []string{"initiated", "ringing", "answered", "completed"}

// callCreator is the slice of the twilio REST api used to place calls.
type callCreator interface {
	CreateCall(params *api.CreateCallParams) (*api.ApiV2010Call, error)
}

type twl struct {
	logger      commons.Logger
	api         callCreator
	from        string
	serverUrl   string
	callTimeout int
}

func NewTwilio(logger commons.Logger, cfg *config.AppConfig) (internal_type.CallPlacer, error) {
	clientParams, err := ClientParam(&cfg.Twilio)
	if err != nil {
		return nil, err
	}
	client := twilio.NewRestClientWithParams(*clientParams)
	return newTwilio(logger, client.Api, cfg), nil
}

func newTwilio(logger commons.Logger, creator callCreator, cfg *config.AppConfig) *twl {
	return &twl{
		logger:      logger,
		api:         creator,
		from:        cfg.Twilio.PhoneNumber,
		serverUrl:   strings.TrimRight(cfg.ServerUrl, "/"),
		callTimeout: cfg.CallTimeout,
	}
}

func ClientParam(cfg *config.TwilioConfig) (*twilio.ClientParams, error) {
	if cfg.AccountSid == "" {
		return nil, fmt.Errorf("illegal twilio config account_sid is not found")
	}
	if cfg.AuthToken == "" {
		return nil, fmt.Errorf("illegal twilio config auth_token not found")
	}
	return &twilio.ClientParams{
		Username: cfg.AccountSid,
		Password: cfg.AuthToken,
	}, nil
}

// PlaceCall starts an outbound call. Twilio fetches the call-start webhook
// with the language in the query string once the callee answers.
func (tpc *twl) PlaceCall(ctx context.Context, to, language string) (string, error) {
	params := &api.CreateCallParams{}
	params.SetTo(to)
	params.SetFrom(tpc.from)
	params.SetUrl(fmt.Sprintf("%s%s?language=%s", tpc.serverUrl, INCOMING_PATH, url.QueryEscape(language)))
	params.SetStatusCallback(tpc.serverUrl + STATUS_PATH)
	params.SetStatusCallbackEvent(statusCallbackEvents)
	params.SetTimeout(tpc.callTimeout)

	resp, err := tpc.api.CreateCall(params)
	if err != nil {
		tpc.logger.Errorf("error initiating outbound call to %s: %v", to, err)
		return "", fmt.Errorf("unable to create call to %s: %w", to, err)
	}
	if resp == nil || resp.Sid == nil {
		return "", fmt.Errorf("twilio returned no call sid for %s", to)
	}
	tpc.logger.Infof("outbound call created: callSid=%s, to=%s, language=%s", *resp.Sid, to, language)
	return *resp.Sid, nil
}
