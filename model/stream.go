package model

import (
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// StreamFragment is one decoded unit of a completion stream. Upstream
// chunks arrive either as raw strings or as structured responses whose
// content lives in choices[0].delta.content; both are resolved to this
// one shape at the stream boundary so nothing downstream inspects the
// wire format.
type StreamFragment struct {
	Content      string
	FinishReason string
}

// Done reports whether the service signalled completion on this fragment.
func (f StreamFragment) Done() bool {
	return f.FinishReason != ""
}

// FragmentFromRaw wraps a plain-string chunk, forwarded as-is.
func FragmentFromRaw(s string) StreamFragment {
	return StreamFragment{Content: s}
}

// FragmentFromResponse decodes a structured stream chunk. A chunk with
// no choices is malformed and aborts the stream.
func FragmentFromResponse(resp openai.ChatCompletionStreamResponse) (StreamFragment, *Error) {
	if len(resp.Choices) == 0 {
		return StreamFragment{}, NewError(ErrorStreamProcessing, fmt.Errorf("stream chunk %s has no choices", resp.ID))
	}

	choice := resp.Choices[0]
	return StreamFragment{
		Content:      choice.Delta.Content,
		FinishReason: string(choice.FinishReason),
	}, nil
}
