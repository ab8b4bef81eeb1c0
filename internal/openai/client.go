package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client wraps the OpenAI SDK and provides utility helpers.
type Client struct {
	client   *openai.Client
	model    openai.ChatModel
	ttsModel openai.SpeechModel
	voice    string
}

// ErrClientNotInitialised is returned when attempting to call the API without a configured client.
var ErrClientNotInitialised = errors.New("openai client not initialised")

// ErrEmptyResponse is returned when the API answers without usable content.
var ErrEmptyResponse = errors.New("openai returned an empty response")

// SpeechSampleRate is the rate of the raw PCM returned by Synthesize.
const SpeechSampleRate = 24000

// Options tune the models used by the client.
type Options struct {
	Model    string
	TTSModel string
	Voice    string
	BaseURL  string
}

// New returns an OpenAI client. Without an apiKey every call fails with
// ErrClientNotInitialised so callers fall back to local behaviour.
func New(apiKey string, opts Options) *Client {
	if apiKey == "" {
		return &Client{}
	}

	// A reminder gets exactly one attempt; the caller falls back instead.
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	client := openai.NewClient(reqOpts...)

	c := &Client{
		client:   &client,
		model:    openai.ChatModelGPT4oMini,
		ttsModel: openai.SpeechModelGPT4oMiniTTS,
		voice:    "alloy",
	}
	if opts.Model != "" {
		c.model = openai.ChatModel(opts.Model)
	}
	if opts.TTSModel != "" {
		c.ttsModel = openai.SpeechModel(opts.TTSModel)
	}
	if opts.Voice != "" {
		c.voice = opts.Voice
	}
	return c
}

// Enabled reports whether an API key was configured.
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// GenerateReminder asks the model for a short reminder for the given PHT time label.
func (c *Client) GenerateReminder(ctx context.Context, timeLabel string) (string, error) {
	if !c.Enabled() {
		return "", ErrClientNotInitialised
	}

	req := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String("You write one short, friendly reminder sentence for someone working through the day. No quotes, no emojis."),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(fmt.Sprintf("It is %s Philippine Standard Time. Write a brief reminder to pause, stretch, drink water or refocus, mentioning the time.", timeLabel)),
					},
				},
			},
		},
		Temperature:         openai.Float(0.8),
		MaxCompletionTokens: openai.Int(60),
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", goerr.Wrap(err, "chat completion failed", goerr.V("label", timeLabel))
	}
	if len(resp.Choices) == 0 {
		return "", goerr.Wrap(ErrEmptyResponse, "no completion received")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", goerr.Wrap(ErrEmptyResponse, "blank completion received")
	}
	return text, nil
}

// Synthesize converts text to speech and returns raw PCM: mono, 24kHz,
// signed 16-bit little-endian samples.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if !c.Enabled() {
		return nil, ErrClientNotInitialised
	}
	if strings.TrimSpace(text) == "" {
		return nil, goerr.New("text cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := c.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          c.ttsModel,
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(c.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "speech request failed", goerr.V("voice", c.voice))
	}
	defer resp.Body.Close()

	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read speech audio")
	}
	if len(pcm) == 0 {
		return nil, goerr.Wrap(ErrEmptyResponse, "speech audio is empty")
	}
	return pcm, nil
}
