package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"github.com/AmineMekki01/rag-app-prod-example/model"
)

const clientNameChatModel = "chat_model"

// SSE framing and headers for the streaming endpoints.
const (
	HeaderContentType       = "Content-Type"
	HeaderContentTypeStream = "text/event-stream"
	HeaderCacheControl      = "Cache-Control"
	HeaderCacheNo           = "no-cache"
	HeaderConnection        = "Connection"
	HeaderKeepAlive         = "keep-alive"
	HeaderTransferEncoding  = "Transfer-Encoding"
	HeaderChunked           = "chunked"
)

var (
	streamMessageStart = []byte("data: ")
	streamMessageEnd   = []byte("\n\n")
)

// Config holds the completion-service connection settings.
type Config struct {
	Addr        string
	Model       string
	Token       string
	Temperature float32
	MaxTokens   int
}

// Client wraps the completion service. One instance per process,
// shared read-only across request handlers.
type Client struct {
	config *Config
}

func NewClient(cfg *Config) *Client {
	return &Client{config: cfg}
}

// FormatEventFrame wraps a payload into one SSE frame.
func FormatEventFrame(payload string) []byte {
	var frame bytes.Buffer
	frame.Write(streamMessageStart)
	frame.WriteString(payload)
	frame.Write(streamMessageEnd)
	return frame.Bytes()
}

func (zc *Client) newAPIClient() *openai.Client {
	defaultReq := openai.DefaultConfig(zc.config.Token)
	defaultReq.BaseURL = zc.config.Addr
	return openai.NewClientWithConfig(defaultReq)
}

func (zc *Client) resolveModel(requested string) string {
	if requested != "" {
		return requested
	}
	return zc.config.Model
}

// PostChatCompletions streams a completion for one user-role turn,
// forwarding each decoded fragment to the caller as an SSE frame. The
// upstream request runs on the gin request context, so a client
// disconnect cancels it.
func (zc *Client) PostChatCompletions(ginCtx *gin.Context, requestedModel string, prompt string) error {
	client := zc.newAPIClient()

	stream, err := client.CreateChatCompletionStream(ginCtx.Request.Context(), openai.ChatCompletionRequest{
		Model: zc.resolveModel(requestedModel),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   zc.config.MaxTokens,
		Temperature: zc.config.Temperature,
		Stream:      true,
	})
	if err != nil {
		log.Errorf("%s stream creation error: %v", clientNameChatModel, err)
		return err
	}

	ginCtx.Writer.Header().Set(HeaderContentType, HeaderContentTypeStream)
	ginCtx.Writer.Header().Set(HeaderCacheControl, HeaderCacheNo)
	ginCtx.Writer.Header().Set(HeaderConnection, HeaderKeepAlive)
	ginCtx.Writer.Header().Set(HeaderTransferEncoding, HeaderChunked)

	ginCtx.Writer.Flush()

	defer func() {
		if closeErr := stream.Close(); closeErr != nil {
			log.Errorf("%s failed to close stream: %v", clientNameChatModel, closeErr)
		}
	}()

	ginCtx.Stream(func(w io.Writer) bool {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return false
		}
		if err != nil {
			log.Errorf("%s stream.Recv error: %v", clientNameChatModel, err)
			return false
		}

		fragment, fragErr := model.FragmentFromResponse(response)
		if fragErr != nil {
			log.Errorf("%s malformed stream chunk, aborting: %v", clientNameChatModel, fragErr)
			return false
		}

		if _, err := w.Write(FormatEventFrame(fragment.Content)); err != nil {
			log.Errorf("%s w.Write error: %v", clientNameChatModel, err)
			return false
		}
		ginCtx.Writer.Flush()

		return !fragment.Done()
	})

	return nil
}

// PostChatCompletionsNonStream sends one user-role turn and returns the
// full response.
func (zc *Client) PostChatCompletionsNonStream(c context.Context, requestedModel string, prompt string) (*openai.ChatCompletionResponse, error) {
	client := zc.newAPIClient()

	request := openai.ChatCompletionRequest{
		Model: zc.resolveModel(requestedModel),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   zc.config.MaxTokens,
		Temperature: zc.config.Temperature,
		Stream:      false,
	}

	// dump the full request/response json on debug level only
	if log.GetLevel() == log.DebugLevel {
		requestJson, err := json.MarshalIndent(request, "", "  ")
		if err != nil {
			log.Errorf("%s chat completion request json marshal error: %v", clientNameChatModel, err)
			return nil, err
		}
		if _, err := fmt.Fprintf(os.Stdout, "[DEBUG] %s chat completion request:\n%s\n", clientNameChatModel, string(requestJson)); err != nil {
			log.Warnf("%s failed to write debug output: %v", clientNameChatModel, err)
		}
	}

	response, err := client.CreateChatCompletion(c, request)
	if err != nil {
		log.Errorf("%s chat completion error: %v", clientNameChatModel, err)
		return nil, err
	}

	if log.GetLevel() == log.DebugLevel {
		responseJson, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			log.Errorf("%s chat completion response json marshal error: %v", clientNameChatModel, err)
		} else {
			if _, err := fmt.Fprintf(os.Stdout, "[DEBUG] %s chat completion response:\n%s\n", clientNameChatModel, string(responseJson)); err != nil {
				log.Warnf("%s failed to write debug output: %v", clientNameChatModel, err)
			}
		}
	}

	return &response, nil
}

// PostChatCompletionsNonStreamContent returns only the answer text of
// the first choice.
func (zc *Client) PostChatCompletionsNonStreamContent(c context.Context, requestedModel string, prompt string) (string, error) {
	response, err := zc.PostChatCompletionsNonStream(c, requestedModel, prompt)
	if err != nil {
		return "", err
	}

	if response == nil {
		log.Errorf("%s chat completion response is nil", clientNameChatModel)
		return "", fmt.Errorf("chat completion response is nil")
	}

	if len(response.Choices) == 0 {
		log.Errorf("%s chat completion response has no choices", clientNameChatModel)
		return "", fmt.Errorf("chat completion response has no choices")
	}

	content := response.Choices[0].Message.Content
	if content == "" {
		log.Warnf("%s chat completion response content is empty", clientNameChatModel)
	}

	return content, nil
}
