package service

import (
	"context"
	"errors"
	"fmt"

	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/pkg/speech"
)

type IVoiceService interface {
	TextToSpeech(ctx context.Context, text string) ([]byte, string, error)
}

type voiceService struct {
	provider speech.Provider
}

func NewVoiceService(provider speech.Provider) IVoiceService {
	return &voiceService{provider: provider}
}

func (s *voiceService) TextToSpeech(ctx context.Context, text string) ([]byte, string, error) {
	audio, contentType, err := s.provider.Synthesize(ctx, text)
	if err != nil {
		if errors.Is(err, speech.ErrUnavailable) {
			return nil, "", fmt.Errorf("text to speech: %w", apperror.ErrUnavailable)
		}
		return nil, "", err
	}
	return audio, contentType, nil
}
