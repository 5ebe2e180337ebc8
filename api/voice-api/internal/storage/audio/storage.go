// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_audio_storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrAudioNotFound = errors.New("audio not found")
	ErrInvalidName   = errors.New("invalid audio name")
)

const EXTENSION = ".wav"

// NewName returns a unique clip name for the given language tag,
// e.g. hi_6f1c....wav
func NewName(language string) string {
	return fmt.Sprintf("%s_%s%s", language, uuid.NewString(), EXTENSION)
}

// validName rejects anything that could escape the store namespace.
func validName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}
