package openai

import (
	"testing"

	"github.com/hupe1980/reactmesh/core"
	"github.com/stretchr/testify/assert"
)

func TestBuildMessages(t *testing.T) {
	out := buildMessages([]core.Message{
		core.NewSystemMessage("sys"),
		core.NewUserMessage("q"),
		core.NewAssistantMessage("a"),
	})
	assert.Len(t, out, 3)
	assert.NotNil(t, out[0].OfSystem)
	assert.NotNil(t, out[1].OfUser)
	assert.NotNil(t, out[2].OfAssistant)
}

func TestNewModel_Options(t *testing.T) {
	m := NewModel(func(o *Options) {
		o.Model = "meta-llama/llama-3.3-70b-instruct/fp-16"
		o.BaseURL = "https://api.inference.net/v1"
		o.APIKey = "test"
	})
	assert.Equal(t, "openai", m.Info().Provider)
	assert.Equal(t, "meta-llama/llama-3.3-70b-instruct/fp-16", m.Info().Name)

	params := m.buildParams([]core.Message{core.NewUserMessage("q")})
	assert.Equal(t, "meta-llama/llama-3.3-70b-instruct/fp-16", string(params.Model))
	assert.Len(t, params.Messages, 1)
}
