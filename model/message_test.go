package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptRawMessage(t *testing.T) {
	m := &BaseMessage{UserMessage: "plain question"}

	assert.Equal(t, "plain question", m.Prompt())
}

func TestPromptPrefersAugmentedMessage(t *testing.T) {
	m := &BaseMessage{
		UserMessage:      "plain question",
		Context:          "caller context",
		AugmentedMessage: "retrieved and augmented",
	}

	assert.Equal(t, "retrieved and augmented", m.Prompt())
}

func TestPromptGroundsOnCallerContext(t *testing.T) {
	m := &BaseMessage{
		UserMessage: "plain question",
		Context:     "caller context",
	}

	prompt := m.Prompt()
	assert.Contains(t, prompt, "QUERY:\nplain question")
	assert.Contains(t, prompt, "CONTEXT:\ncaller context")
}
