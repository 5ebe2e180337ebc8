// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_language

import (
	"strings"

	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
)

const (
	Hindi   = "hi"
	Telugu  = "te"
	English = "en"
	Urdu    = "ur"

	DEFAULT_VOICE = "meera"
)

var profiles = map[string]internal_type.LanguageProfile{
	Hindi: {
		Tag:               Hindi,
		Greeting:          "नमस्ते! मैं आपकी सहायता के लिए यहाँ हूँ। मैं आपकी कैसे मदद कर सकता हूँ?",
		Fallback:          "क्षमा करें, मैं आपकी बात समझ नहीं पाया। क्या आप कृपया दोहरा सकते हैं?",
		ErrorText:         "क्षमा करें, कुछ गलत हो गया। कृपया बाद में पुनः प्रयास करें।",
		Hints:             "हाँ, नहीं, ठीक है, धन्यवाद",
		Voice:             DEFAULT_VOICE,
		SynthesisCode:     "hi-IN",
		RecognitionLocale: "hi-IN",
	},
	Telugu: {
		Tag:               Telugu,
		Greeting:          "నమస్కారం! నేను మీకు సహాయం చేయడానికి ఇక్కడ ఉన్నాను. నేను మీకు ఎలా సహాయం చేయగలను?",
		Fallback:          "క్షమించండి, నేను మీ మాట అర్థం చేసుకోలేకపోయాను. దయచేసి మళ్లీ చెప్పగలరా?",
		ErrorText:         "క్షమించండి, ఏదో తప్పు జరిగింది. దయచేసి తర్వాత మళ్లీ ప్రయత్నించండి.",
		Hints:             "అవును, కాదు, సరే, ధన్యవాదాలు",
		Voice:             DEFAULT_VOICE,
		SynthesisCode:     "te-IN",
		RecognitionLocale: "te-IN",
	},
	English: {
		Tag:               English,
		Greeting:          "Hello! I am here to assist you. How may I help you today?",
		Fallback:          "Sorry, I did not understand that. Could you please repeat?",
		ErrorText:         "Sorry, something went wrong. Please try again later.",
		Hints:             "yes, no, okay, thank you",
		Voice:             DEFAULT_VOICE,
		SynthesisCode:     "en-IN",
		RecognitionLocale: "en-IN",
	},
	Urdu: {
		Tag:               Urdu,
		Greeting:          "السلام علیکم! میں آپ کی مدد کے لیے یہاں موجود ہوں۔ میں آپ کی کیسے مدد کر سکتا ہوں؟",
		Fallback:          "معذرت، میں آپ کی بات سمجھ نہیں پایا۔ کیا آپ براہ کرم دہرا سکتے ہیں؟",
		ErrorText:         "معذرت، کچھ غلط ہو گیا۔ براہ کرم بعد میں دوبارہ کوشش کریں۔",
		Hints:             "ہاں, نہیں, ٹھیک ہے, شکریہ",
		Voice:             DEFAULT_VOICE,
		SynthesisCode:     "ur-PK",
		RecognitionLocale: "ur-PK",
	},
}

// Resolver maps language tags to profiles. It is immutable after
// construction and safe for concurrent use.
type Resolver struct {
	defaultTag string
	supported  []string
}

// NewResolver builds a resolver. Unknown entries in supported are dropped;
// an empty list enables every known language. A default that has no
// profile falls back to English.
func NewResolver(defaultTag string, supported []string) *Resolver {
	defaultTag = normalize(defaultTag)
	if _, ok := profiles[defaultTag]; !ok {
		defaultTag = English
	}

	tags := make([]string, 0, len(profiles))
	for _, tag := range supported {
		tag = normalize(tag)
		if _, ok := profiles[tag]; ok && !contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		tags = append(tags, Hindi, Telugu, English, Urdu)
	}
	if !contains(tags, defaultTag) {
		tags = append(tags, defaultTag)
	}
	return &Resolver{defaultTag: defaultTag, supported: tags}
}

// Resolve never fails: unsupported tags resolve to the default language.
func (r *Resolver) Resolve(tag string) internal_type.LanguageProfile {
	tag = normalize(tag)
	if r.Supported(tag) {
		return profiles[tag]
	}
	return profiles[r.defaultTag]
}

func (r *Resolver) Supported(tag string) bool {
	return contains(r.supported, normalize(tag))
}

func (r *Resolver) Default() string {
	return r.defaultTag
}

// Tags returns a copy of the supported tags in configuration order.
func (r *Resolver) Tags() []string {
	out := make([]string, len(r.supported))
	copy(out, r.supported)
	return out
}

func normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
