// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Outbound caller asks a running voice-api to place a call.
//
//	outbound-caller <phone_number> [language]
//	outbound-caller +919876543210 hi
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Anand38913/Rasa/config"
	voice_client "github.com/Anand38913/Rasa/pkg/clients/voice"
	"github.com/Anand38913/Rasa/pkg/commons"
	"github.com/Anand38913/Rasa/pkg/utils"
)

var languageNames = map[string]string{
	"hi": "Hindi",
	"te": "Telugu",
	"en": "English",
	"ur": "Urdu",
}

func main() {
	v, err := config.InitConfig()
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}
	logger, err := commons.NewApplicationLogger(commons.Name("outbound-caller"), commons.Level("info"), commons.Development(true))
	if err != nil {
		log.Fatalf("unable to build logger: %v", err)
	}

	code := run(context.Background(), os.Args[1:], v, logger, os.Stdout)
	_ = logger.Sync()
	os.Exit(code)
}

func run(ctx context.Context, args []string, v *viper.Viper, logger commons.Logger, out io.Writer) int {
	supported := utils.SplitCSV(v.GetString("SUPPORTED_LANGUAGES"))
	if len(supported) == 0 {
		supported = []string{"hi", "te", "en", "ur"}
	}
	if len(args) < 1 {
		usage(out, supported)
		return 1
	}

	phoneNumber := strings.TrimSpace(args[0])
	language := "hi"
	if len(args) > 1 {
		language = strings.ToLower(strings.TrimSpace(args[1]))
	}

	if !utils.IsPhoneNumber(phoneNumber) {
		logger.Warnf("phone number should be in E.164 format (e.g., +919876543210), got %q", phoneNumber)
		return 1
	}
	if !isSupported(language, supported) {
		logger.Warnf("language %q not supported, supported languages: %s", language, strings.Join(supported, ", "))
		return 1
	}

	serverUrl := v.GetString("SERVER_URL")
	if serverUrl == "" {
		serverUrl = "http://localhost:5000"
	}
	client := voice_client.NewVoiceServiceClient(logger, serverUrl, voice_client.DEFAULT_TIMEOUT)
	result, err := client.InitiateCall(ctx, phoneNumber, language)
	if err != nil {
		logger.Errorf("failed to initiate call via %s: %v", serverUrl, err)
		fmt.Fprintln(out, "\n✗ Failed to initiate call")
		return 1
	}

	logger.Infow("call initiated", "call_sid", result.CallSid, "to", result.To, "language", result.Language)
	fmt.Fprintln(out, "\n✓ Call initiated successfully!")
	fmt.Fprintf(out, "Call SID: %s\n", result.CallSid)
	fmt.Fprintln(out, "Monitor the call status in your Twilio console or check logs")
	return 0
}

func usage(out io.Writer, supported []string) {
	fmt.Fprintln(out, "Usage: outbound-caller <phone_number> [language]")
	fmt.Fprintln(out, "Example: outbound-caller +919876543210 hi")
	fmt.Fprintln(out, "\nSupported languages:")
	for _, tag := range supported {
		name, ok := languageNames[tag]
		if !ok {
			name = tag
		}
		fmt.Fprintf(out, "  %s - %s\n", tag, name)
	}
}

func isSupported(language string, supported []string) bool {
	for _, tag := range supported {
		if tag == language {
			return true
		}
	}
	return false
}
