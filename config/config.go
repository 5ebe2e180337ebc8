package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/Anand38913/Rasa/pkg/connectors"
)

type GatherConfig struct {
	// seconds Twilio waits for the caller to start speaking
	Timeout       int    `mapstructure:"timeout" validate:"min=1"`
	SpeechTimeout string `mapstructure:"speech_timeout" validate:"required"`
}

type TwilioConfig struct {
	AccountSid  string `mapstructure:"account_sid" validate:"required"`
	AuthToken   string `mapstructure:"auth_token" validate:"required"`
	PhoneNumber string `mapstructure:"phone_number" validate:"required"`
}

type RasaConfig struct {
	Url     string        `mapstructure:"url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type SarvamConfig struct {
	// an empty key disables the primary synthesizer
	ApiKey     string        `mapstructure:"api_key"`
	ApiUrl     string        `mapstructure:"api_url" validate:"required,url"`
	Model      string        `mapstructure:"model" validate:"required"`
	Voice      string        `mapstructure:"voice"`
	VoiceSpeed float64       `mapstructure:"voice_speed" validate:"gt=0"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type AudioConfig struct {
	Store     string        `mapstructure:"store" validate:"oneof=file redis"`
	Directory string        `mapstructure:"directory"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// Application config structure
type AppConfig struct {
	Name               string   `mapstructure:"service_name" validate:"required"`
	Version            string   `mapstructure:"version" validate:"required"`
	Env                string   `mapstructure:"env"`
	Host               string   `mapstructure:"host" validate:"required"`
	Port               int      `mapstructure:"port" validate:"required"`
	LogLevel           string   `mapstructure:"log_level" validate:"required"`
	LogPath            string   `mapstructure:"log_path"`
	ServerUrl          string   `mapstructure:"server_url" validate:"required,url"`
	DefaultLanguage    string   `mapstructure:"default_language" validate:"required,oneof=hi te en ur"`
	SupportedLanguages []string `mapstructure:"supported_languages"`
	// ring timeout in seconds for outbound calls
	CallTimeout int `mapstructure:"call_timeout" validate:"min=1"`

	Gather GatherConfig           `mapstructure:"gather"`
	Twilio TwilioConfig           `mapstructure:"twilio"`
	Rasa   RasaConfig             `mapstructure:"rasa"`
	Sarvam SarvamConfig           `mapstructure:"sarvam"`
	Audio  AudioConfig            `mapstructure:"audio"`
	Redis  connectors.RedisConfig `mapstructure:"redis"`
}

// reading config and intializing configs for application
func InitConfig() (*viper.Viper, error) {
	vConfig := viper.NewWithOptions(viper.KeyDelimiter("__"))

	vConfig.AddConfigPath(".")
	vConfig.SetConfigName(".env")
	path := os.Getenv("ENV_PATH")
	if path != "" {
		log.Printf("env path %v", path)
		vConfig.SetConfigFile(path)
	}
	vConfig.SetConfigType("env")
	vConfig.AutomaticEnv()

	setDefault(vConfig)
	if err := vConfig.ReadInConfig(); err != nil {
		log.Printf("no env file found, reading from env variables.")
	}
	return vConfig, nil
}

func setDefault(v *viper.Viper) {
	// setting all default values
	// keeping watch on https://github.com/spf13/viper/issues/188
	v.SetDefault("SERVICE_NAME", "voice-api")
	v.SetDefault("VERSION", "0.0.1")
	v.SetDefault("ENV", "development")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 5000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PATH", "")
	v.SetDefault("SERVER_URL", "")
	v.SetDefault("DEFAULT_LANGUAGE", "hi")
	v.SetDefault("SUPPORTED_LANGUAGES", "hi,te,en,ur")
	v.SetDefault("CALL_TIMEOUT", 60)

	v.SetDefault("GATHER__TIMEOUT", 5)
	v.SetDefault("GATHER__SPEECH_TIMEOUT", "auto")

	v.SetDefault("TWILIO__ACCOUNT_SID", "")
	v.SetDefault("TWILIO__AUTH_TOKEN", "")
	v.SetDefault("TWILIO__PHONE_NUMBER", "")

	v.SetDefault("RASA__URL", "http://localhost:5005")
	v.SetDefault("RASA__TIMEOUT", 10*time.Second)

	v.SetDefault("SARVAM__API_KEY", "")
	v.SetDefault("SARVAM__API_URL", "https://api.sarvam.ai/text-to-speech")
	v.SetDefault("SARVAM__MODEL", "bulbul:v1")
	v.SetDefault("SARVAM__VOICE", "")
	v.SetDefault("SARVAM__VOICE_SPEED", 1.0)
	v.SetDefault("SARVAM__TIMEOUT", 10*time.Second)

	v.SetDefault("AUDIO__STORE", "file")
	v.SetDefault("AUDIO__DIRECTORY", "temp_audio")
	v.SetDefault("AUDIO__TTL", time.Hour)

	v.SetDefault("REDIS__HOST", "localhost")
	v.SetDefault("REDIS__PORT", 6379)
	v.SetDefault("REDIS__PASSWORD", "")
	v.SetDefault("REDIS__DB", 0)
}

// Getting application config from viper
func GetApplicationConfig(v *viper.Viper) (*AppConfig, error) {
	var config AppConfig
	// SUPPORTED_LANGUAGES arrives as a comma separated string from env
	err := v.Unmarshal(&config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		log.Printf("%+v\n", err)
		return nil, err
	}

	// valdating the app config
	validate := validator.New()
	err = validate.Struct(&config)
	if err != nil {
		log.Printf("%+v\n", err)
		return nil, err
	}
	return &config, nil
}

// Address returns the listen address of the http server.
func (cfg *AppConfig) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
