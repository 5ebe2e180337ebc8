// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_twilio_telephony

import (
	"strconv"
	"strings"

	"github.com/twilio/twilio-go/twiml"

	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
)

// HANGUP_TWIML is served when even the failure document cannot be rendered.
const HANGUP_TWIML = `<?xml version="1.0" encoding="UTF-8"?><Response><Hangup/></Response>`

type markupBuilder struct {
	processUrl    string
	timeout       int
	speechTimeout string
}

// NewMarkupBuilder renders TwiML. The gather action and the no-input
// redirect both point at the speech-turn webhook under serverUrl.
func NewMarkupBuilder(serverUrl string, gatherTimeout int, speechTimeout string) internal_type.MarkupBuilder {
	if gatherTimeout <= 0 {
		gatherTimeout = 5
	}
	if speechTimeout == "" {
		speechTimeout = "auto"
	}
	return &markupBuilder{
		processUrl:    strings.TrimRight(serverUrl, "/") + PROCESS_PATH,
		timeout:       gatherTimeout,
		speechTimeout: speechTimeout,
	}
}

// Conversation speaks the reply and then either listens for the next
// utterance or hangs up.
func (b *markupBuilder) Conversation(speech internal_type.Speech, profile internal_type.LanguageProfile, endCall bool) (string, error) {
	verbs := []twiml.Element{b.speak(speech, profile)}
	if endCall {
		verbs = append(verbs, &twiml.VoiceHangup{})
		return twiml.Voice(verbs)
	}

	verbs = append(verbs,
		&twiml.VoiceGather{
			Input:         "speech",
			Action:        b.processUrl,
			Method:        "POST",
			Timeout:       strconv.Itoa(b.timeout),
			SpeechTimeout: b.speechTimeout,
			Language:      profile.RecognitionLocale,
			Hints:         profile.Hints,
		},
		&twiml.VoiceRedirect{
			Url:    b.processUrl,
			Method: "POST",
		},
	)
	return twiml.Voice(verbs)
}

// Failure apologises in the profile language and ends the call.
func (b *markupBuilder) Failure(profile internal_type.LanguageProfile) (string, error) {
	return twiml.Voice([]twiml.Element{
		&twiml.VoiceSay{Message: profile.ErrorText, Language: profile.RecognitionLocale},
		&twiml.VoiceHangup{},
	})
}

func (b *markupBuilder) speak(speech internal_type.Speech, profile internal_type.LanguageProfile) twiml.Element {
	if speech.HasAudio() {
		return &twiml.VoicePlay{Url: speech.AudioURL}
	}
	locale := speech.Locale
	if locale == "" {
		locale = profile.RecognitionLocale
	}
	return &twiml.VoiceSay{Message: speech.Text, Language: locale}
}
