// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_transformer_sarvam

import (
	"context"
	"regexp"
	"strings"

	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
	"github.com/Anand38913/Rasa/pkg/commons"
)

// =============================================================================
// Sarvam Text Normalizer
// =============================================================================

var (
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	emphasisRe   = regexp.MustCompile(`\*{1,2}([^*]+?)\*{1,2}|_{1,2}([^_]+?)_{1,2}`)
	codeBlockRe  = regexp.MustCompile("(?s)```[^`]*```")
	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
	quoteRe      = regexp.MustCompile(`(?m)^>\s?`)
	imageRe      = regexp.MustCompile(`!\[(.*?)\]\(.*?\)`)
	linkRe       = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	ruleRe       = regexp.MustCompile(`(?m)^(-{3,}|\*{3,}|_{3,})$`)
	strayMarkRe  = regexp.MustCompile(`[*_]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// sarvamNormalizer prepares reply text for Sarvam. Sarvam does NOT support
// SSML, only plain text is accepted.
type sarvamNormalizer struct {
	logger commons.Logger
}

func NewSarvamNormalizer(logger commons.Logger) internal_type.TextNormalizer {
	return &sarvamNormalizer{logger: logger}
}

// Normalize strips markdown that NLU replies sometimes carry and collapses
// whitespace.
func (n *sarvamNormalizer) Normalize(ctx context.Context, text string) string {
	if text == "" {
		return text
	}
	text = n.removeMarkdown(text)
	return n.normalizeWhitespace(text)
}

func (n *sarvamNormalizer) removeMarkdown(input string) string {
	output := headingRe.ReplaceAllString(input, "")
	output = codeBlockRe.ReplaceAllString(output, "")
	output = emphasisRe.ReplaceAllString(output, "$1$2")
	output = inlineCodeRe.ReplaceAllString(output, "$1")
	output = quoteRe.ReplaceAllString(output, "")
	output = imageRe.ReplaceAllString(output, "$1")
	output = linkRe.ReplaceAllString(output, "$1")
	output = ruleRe.ReplaceAllString(output, "")
	return strayMarkRe.ReplaceAllString(output, "")
}

func (n *sarvamNormalizer) normalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
