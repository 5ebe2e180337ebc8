package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("SERVER_URL", "https://bot.example.com")
	t.Setenv("TWILIO__ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO__AUTH_TOKEN", "secret")
	t.Setenv("TWILIO__PHONE_NUMBER", "+15550000000")
}

func TestGetApplicationConfig_Defaults(t *testing.T) {
	setRequired(t)
	v, err := InitConfig()
	require.NoError(t, err)

	cfg, err := GetApplicationConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "voice-api", cfg.Name)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.Address())
	assert.Equal(t, "hi", cfg.DefaultLanguage)
	assert.Equal(t, []string{"hi", "te", "en", "ur"}, cfg.SupportedLanguages)
	assert.Equal(t, 60, cfg.CallTimeout)
	assert.Equal(t, 5, cfg.Gather.Timeout)
	assert.Equal(t, "auto", cfg.Gather.SpeechTimeout)
	assert.Equal(t, "http://localhost:5005", cfg.Rasa.Url)
	assert.Equal(t, 10*time.Second, cfg.Rasa.Timeout)
	assert.Equal(t, "https://api.sarvam.ai/text-to-speech", cfg.Sarvam.ApiUrl)
	assert.Equal(t, "bulbul:v1", cfg.Sarvam.Model)
	assert.Equal(t, 1.0, cfg.Sarvam.VoiceSpeed)
	assert.Empty(t, cfg.Sarvam.ApiKey)
	assert.Equal(t, "file", cfg.Audio.Store)
	assert.Equal(t, "temp_audio", cfg.Audio.Directory)
	assert.Equal(t, time.Hour, cfg.Audio.TTL)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "AC123", cfg.Twilio.AccountSid)
}

func TestGetApplicationConfig_EnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DEFAULT_LANGUAGE", "te")
	t.Setenv("RASA__TIMEOUT", "3s")
	t.Setenv("SARVAM__API_KEY", "sk-test")
	t.Setenv("AUDIO__STORE", "redis")
	t.Setenv("PORT", "8080")

	v, err := InitConfig()
	require.NoError(t, err)
	cfg, err := GetApplicationConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "te", cfg.DefaultLanguage)
	assert.Equal(t, 3*time.Second, cfg.Rasa.Timeout)
	assert.Equal(t, "sk-test", cfg.Sarvam.ApiKey)
	assert.Equal(t, "redis", cfg.Audio.Store)
	assert.Equal(t, 8080, cfg.Port)
}

func TestGetApplicationConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voice.env")
	content := "SERVER_URL=https://file.example.com\n" +
		"TWILIO__ACCOUNT_SID=ACfile\n" +
		"TWILIO__AUTH_TOKEN=token\n" +
		"TWILIO__PHONE_NUMBER=+15551112222\n" +
		"DEFAULT_LANGUAGE=ur\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("ENV_PATH", path)

	v, err := InitConfig()
	require.NoError(t, err)
	cfg, err := GetApplicationConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com", cfg.ServerUrl)
	assert.Equal(t, "ACfile", cfg.Twilio.AccountSid)
	assert.Equal(t, "ur", cfg.DefaultLanguage)
}

func TestGetApplicationConfig_MissingTwilio(t *testing.T) {
	t.Setenv("SERVER_URL", "https://bot.example.com")
	v, err := InitConfig()
	require.NoError(t, err)

	cfg, err := GetApplicationConfig(v)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestGetApplicationConfig_InvalidDefaultLanguage(t *testing.T) {
	setRequired(t)
	t.Setenv("DEFAULT_LANGUAGE", "fr")
	v, err := InitConfig()
	require.NoError(t, err)

	_, err = GetApplicationConfig(v)
	assert.Error(t, err)
}

func TestGetApplicationConfig_MissingServerUrl(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_URL", "")
	v, err := InitConfig()
	require.NoError(t, err)

	_, err = GetApplicationConfig(v)
	assert.Error(t, err)
}
