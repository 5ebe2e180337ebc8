package internal_twilio_telephony

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	api "github.com/twilio/twilio-go/rest/api/v2010"

	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
	"github.com/Anand38913/Rasa/config"
	"github.com/Anand38913/Rasa/pkg/commons"
)

func newTestLogger() commons.Logger {
	l, _ := commons.NewApplicationLogger(commons.Level("error"))
	return l
}

func newTestConfig() *config.AppConfig {
	return &config.AppConfig{
		ServerUrl:   "https://bot.example.com/",
		CallTimeout: 45,
		Twilio: config.TwilioConfig{
			AccountSid:  "AC123",
			AuthToken:   "secret",
			PhoneNumber: "+15550000000",
		},
	}
}

var english = internal_type.LanguageProfile{
	Tag:               "en",
	ErrorText:         "Sorry, something went wrong. Please try again later.",
	Hints:             "yes, no, okay, thank you",
	RecognitionLocale: "en-IN",
}

// --- Client Tests ---

func TestClientParam(t *testing.T) {
	params, err := ClientParam(&config.TwilioConfig{AccountSid: "AC1", AuthToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "AC1", params.Username)
	assert.Equal(t, "tok", params.Password)

	_, err = ClientParam(&config.TwilioConfig{AuthToken: "tok"})
	assert.Error(t, err)
	_, err = ClientParam(&config.TwilioConfig{AccountSid: "AC1"})
	assert.Error(t, err)
}

type fakeCreator struct {
	params *api.CreateCallParams
	sid    *string
	err    error
}

func (f *fakeCreator) CreateCall(params *api.CreateCallParams) (*api.ApiV2010Call, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &api.ApiV2010Call{Sid: f.sid}, nil
}

func TestPlaceCall(t *testing.T) {
	sid := "CA42"
	creator := &fakeCreator{sid: &sid}
	placer := newTwilio(newTestLogger(), creator, newTestConfig())

	got, err := placer.PlaceCall(context.Background(), "+919876543210", "te")
	require.NoError(t, err)
	assert.Equal(t, "CA42", got)

	p := creator.params
	require.NotNil(t, p)
	assert.Equal(t, "+919876543210", *p.To)
	assert.Equal(t, "+15550000000", *p.From)
	assert.Equal(t, "https://bot.example.com/voice/incoming?language=te", *p.Url)
	assert.Equal(t, "https://bot.example.com/voice/status", *p.StatusCallback)
	assert.Equal(t, []string{"initiated", "ringing", "answered", "completed"}, *p.StatusCallbackEvent)
	assert.Equal(t, 45, *p.Timeout)
}

func TestPlaceCall_Error(t *testing.T) {
	placer := newTwilio(newTestLogger(), &fakeCreator{err: errors.New("invalid number")}, newTestConfig())
	_, err := placer.PlaceCall(context.Background(), "+1", "en")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number")
}

func TestPlaceCall_MissingSid(t *testing.T) {
	placer := newTwilio(newTestLogger(), &fakeCreator{}, newTestConfig())
	_, err := placer.PlaceCall(context.Background(), "+919876543210", "en")
	assert.Error(t, err)
}

// --- Markup Tests ---

func TestConversation_SayGatherRedirect(t *testing.T) {
	b := NewMarkupBuilder("https://bot.example.com", 5, "auto")
	doc, err := b.Conversation(internal_type.Speech{Text: "Hello", Locale: "en-IN"}, english, false)
	require.NoError(t, err)

	assert.Contains(t, doc, "<Response>")
	assert.Contains(t, doc, `language="en-IN"`)
	assert.Contains(t, doc, ">Hello</Say>")
	assert.Contains(t, doc, `input="speech"`)
	assert.Contains(t, doc, `action="https://bot.example.com/voice/process"`)
	assert.Contains(t, doc, `method="POST"`)
	assert.Contains(t, doc, `timeout="5"`)
	assert.Contains(t, doc, `speechTimeout="auto"`)
	assert.Contains(t, doc, `hints="yes, no, okay, thank you"`)
	assert.Contains(t, doc, ">https://bot.example.com/voice/process</Redirect>")
	assert.NotContains(t, doc, "<Play")
	assert.NotContains(t, doc, "<Hangup")

	say := strings.Index(doc, "<Say")
	gather := strings.Index(doc, "<Gather")
	redirect := strings.Index(doc, "<Redirect")
	assert.True(t, say < gather && gather < redirect)
}

func TestConversation_Play(t *testing.T) {
	b := NewMarkupBuilder("https://bot.example.com", 5, "auto")
	doc, err := b.Conversation(internal_type.Speech{Text: "Hello", AudioURL: "https://bot.example.com/audio/en_1.wav"}, english, false)
	require.NoError(t, err)

	assert.Contains(t, doc, ">https://bot.example.com/audio/en_1.wav</Play>")
	assert.NotContains(t, doc, "<Say")
	assert.Contains(t, doc, "<Gather")
}

func TestConversation_EndCall(t *testing.T) {
	b := NewMarkupBuilder("https://bot.example.com", 5, "auto")
	doc, err := b.Conversation(internal_type.Speech{Text: "Bye"}, english, true)
	require.NoError(t, err)

	assert.Contains(t, doc, ">Bye</Say>")
	assert.Contains(t, doc, "<Hangup")
	assert.NotContains(t, doc, "<Gather")
	assert.NotContains(t, doc, "<Redirect")
}

func TestFailure(t *testing.T) {
	b := NewMarkupBuilder("https://bot.example.com", 5, "auto")
	doc, err := b.Failure(english)
	require.NoError(t, err)

	assert.Contains(t, doc, "Sorry, something went wrong. Please try again later.")
	assert.Contains(t, doc, `language="en-IN"`)
	assert.Contains(t, doc, "<Hangup")
	assert.True(t, strings.Index(doc, "<Say") < strings.Index(doc, "<Hangup"))
}

func TestNewMarkupBuilder_Defaults(t *testing.T) {
	b := NewMarkupBuilder("https://bot.example.com/", 0, "")
	doc, err := b.Conversation(internal_type.Speech{Text: "Hi"}, english, false)
	require.NoError(t, err)
	assert.Contains(t, doc, `timeout="5"`)
	assert.Contains(t, doc, `speechTimeout="auto"`)
	assert.Contains(t, doc, `action="https://bot.example.com/voice/process"`)
}
