package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/model"
)

// MockModel is a testify mock implementing model.Model.
//
//	m := new(testutil.MockModel)
//	m.On("Generate", mock.Anything, mock.Anything).Return("<answer>ok</answer>", nil).Once()
type MockModel struct {
	mock.Mock
}

// Generate implements model.Model.
func (m *MockModel) Generate(ctx context.Context, messages []core.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

// Info implements model.Model.
func (m *MockModel) Info() model.Info {
	return model.Info{Name: "testify-mock", Provider: "mock"}
}

// LastUserMessage returns the content of the final user message in msgs.
func LastUserMessage(msgs []core.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == core.RoleUser {
			return msgs[i].Content
		}
	}
	return ""
}
