// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_type

// LanguageProfile is the bundle of localized artifacts used for one language
// during a call.
type LanguageProfile struct {
	// short tag, one of hi, te, en, ur
	Tag string

	Greeting  string
	Fallback  string
	ErrorText string

	// comma separated phrases passed to the speech recognizer
	Hints string

	// synthesis voice and language code sent to the TTS provider
	Voice         string
	SynthesisCode string

	// locale used for Twilio <Say> and <Gather>
	RecognitionLocale string
}
