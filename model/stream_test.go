package model

import (
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentFromRaw(t *testing.T) {
	fragment := FragmentFromRaw("hello")

	assert.Equal(t, "hello", fragment.Content)
	assert.False(t, fragment.Done())
}

func TestFragmentFromResponse(t *testing.T) {
	fragment, err := FragmentFromResponse(openai.ChatCompletionStreamResponse{
		ID: "chunk-1",
		Choices: []openai.ChatCompletionStreamChoice{
			{Delta: openai.ChatCompletionStreamChoiceDelta{Content: "Hel"}},
		},
	})

	require.Nil(t, err)
	assert.Equal(t, "Hel", fragment.Content)
	assert.False(t, fragment.Done())
}

func TestFragmentFromResponseFinishReason(t *testing.T) {
	fragment, err := FragmentFromResponse(openai.ChatCompletionStreamResponse{
		ID: "chunk-3",
		Choices: []openai.ChatCompletionStreamChoice{
			{
				Delta:        openai.ChatCompletionStreamChoiceDelta{Content: ""},
				FinishReason: openai.FinishReasonStop,
			},
		},
	})

	require.Nil(t, err)
	assert.Empty(t, fragment.Content)
	assert.True(t, fragment.Done())
}

func TestFragmentFromResponseNoChoices(t *testing.T) {
	_, err := FragmentFromResponse(openai.ChatCompletionStreamResponse{ID: "chunk-x"})

	require.NotNil(t, err)
	assert.Equal(t, ErrorStreamProcessing, err.Code)
}
