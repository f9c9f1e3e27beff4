package resumereader

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

const transcribePrompt = `Transcribe every piece of visible text from these resume pages in reading order.
Return plain text only. Keep section headings on their own lines. Do not summarise, translate or add commentary.`

// OpenAITranscriber turns rendered resume pages into plain text with a
// vision model.
type OpenAITranscriber struct {
	client *openai.Client
	model  string
}

func NewOpenAITranscriber(apiKey, model string) *OpenAITranscriber {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	if model == "" {
		model = "gpt-4o"
	}
	return &OpenAITranscriber{client: &client, model: model}
}

func (t *OpenAITranscriber) Transcribe(ctx context.Context, pages [][]byte) (string, error) {
	if len(pages) == 0 {
		return "", errors.New("no pages provided")
	}

	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(pages)+1)
	parts = append(parts, openai.ChatCompletionContentPartUnionParam{
		OfText: &openai.ChatCompletionContentPartTextParam{
			Type: constant.Text("text"),
			Text: transcribePrompt,
		},
	})
	for _, page := range pages {
		parts = append(parts, openai.ChatCompletionContentPartUnionParam{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				Type: constant.ImageURL("image_url"),
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL:    "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(page),
					Detail: "high",
				},
			},
		})
	}

	completion, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: t.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are an OCR engine for resumes."),
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: parts,
					},
				},
			},
		},
		Temperature: openai.Float(0),
		MaxTokens:   openai.Int(4000),
	})
	if err != nil {
		return "", fmt.Errorf("openai vision api error: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no response from openai")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
