// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_audio_storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
	"github.com/Anand38913/Rasa/pkg/commons"
)

type fileStorage struct {
	logger    commons.Logger
	directory string
}

// NewFileStorage keeps clips as files under directory, creating it if needed.
func NewFileStorage(logger commons.Logger, directory string) (internal_type.AudioStore, error) {
	if directory == "" {
		directory = "temp_audio"
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create audio directory %s: %w", directory, err)
	}
	return &fileStorage{logger: logger, directory: directory}, nil
}

func (s *fileStorage) Name() string {
	return "file://" + s.directory
}

func (s *fileStorage) Put(ctx context.Context, name string, data []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	path := filepath.Join(s.directory, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write audio %s: %w", name, err)
	}
	s.logger.Debugf("stored audio: path=%s, bytes=%d", path, len(data))
	return nil
}

func (s *fileStorage) Get(ctx context.Context, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.directory, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrAudioNotFound)
		}
		return nil, fmt.Errorf("unable to read audio %s: %w", name, err)
	}
	return data, nil
}
