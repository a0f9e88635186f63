package agent

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/internal/testutil"
	"github.com/hupe1980/reactmesh/model"
)

func newMember(t *testing.T, llm model.Model, name string) *MemberAgent {
	t.Helper()
	m, err := NewMemberAgent(llm, name, name+" backstory", name+" task", name+" output", nil)
	require.NoError(t, err)
	return m
}

func TestNewMemberAgent_Validation(t *testing.T) {
	_, err := NewMemberAgent(nil, "a", "", "", "", nil)
	assert.ErrorIs(t, err, core.ErrNilModel)

	_, err = NewMemberAgent(model.NewMockModel(), "", "", "", "", nil)
	assert.Error(t, err)
}

func TestMemberAgent_LinksAreSymmetric(t *testing.T) {
	llm := model.NewMockModel()
	a, b, c := newMember(t, llm, "a"), newMember(t, llm, "b"), newMember(t, llm, "c")

	require.NoError(t, a.AddDependent(b))
	require.NoError(t, c.AddDependency(b))
	require.NoError(t, a.AddDependent(b))

	assert.Equal(t, []*MemberAgent{b}, a.Dependents())
	assert.Equal(t, []*MemberAgent{a}, b.Dependencies())
	assert.Equal(t, []*MemberAgent{c}, b.Dependents())
	assert.Equal(t, []*MemberAgent{b}, c.Dependencies())
	assert.Empty(t, a.Dependencies())
}

func TestMemberAgent_RejectsSelfAndNil(t *testing.T) {
	a := newMember(t, model.NewMockModel(), "a")
	assert.ErrorIs(t, a.AddDependent(a), core.ErrSelfDependency)
	assert.Error(t, a.AddDependency(nil))
	assert.Empty(t, a.Dependents())
}

func TestMemberAgent_ConcurrentLinking(t *testing.T) {
	llm := model.NewMockModel()
	root := newMember(t, llm, "root")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		child := newMember(t, llm, "child")
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = root.AddDependent(child)
		}()
	}
	wg.Wait()

	assert.Len(t, root.Dependents(), 20)
	for _, d := range root.Dependents() {
		assert.Equal(t, []*MemberAgent{root}, d.Dependencies())
	}
}

func TestMemberAgent_PromptContainsTaskAndContext(t *testing.T) {
	m := newMember(t, model.NewMockModel(), "writer")
	m.AddContext("draft one")

	prompt, err := m.Prompt()
	require.NoError(t, err)
	assert.Contains(t, prompt, "You are the writer, collaborating with a team in a workflow.")
	assert.Contains(t, prompt, "writer backstory")
	assert.Contains(t, prompt, "Your task is to:\nwriter task")
	assert.Contains(t, prompt, "writer output")
	assert.Contains(t, prompt, "<context>\n\ndraft one\n\n</context>")
}

func TestMemberAgent_BackstoryOpensSystemPrompt(t *testing.T) {
	llm := model.NewMockModel("<answer>ok</answer>")
	m := newMember(t, llm, "editor")

	system, err := m.SystemPrompt(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(system, "editor backstory\n"))

	_, err = m.Generate(context.Background())
	require.NoError(t, err)
	msgs := llm.Calls()[0]
	assert.Equal(t, system, msgs[0].Content)
	assert.Contains(t, msgs[1].Content, "editor backstory")
}

func TestMemberAgent_GeneratePropagatesResult(t *testing.T) {
	sink := testutil.NewRecordingSink()
	llm := model.NewMockModel("<answer>R</answer>")

	a, err := NewMemberAgent(llm, "a", "", "t", "o", nil, func(o *Options) { o.Sink = sink })
	require.NoError(t, err)
	b := newMember(t, llm, "b")
	c := newMember(t, llm, "c")
	require.NoError(t, a.AddDependent(b))
	require.NoError(t, a.AddDependent(c))

	result, err := a.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "R", result)
	assert.Equal(t, "\nR\n", b.Context())
	assert.Equal(t, "\nR\n", c.Context())
	assert.Empty(t, a.Context())

	assert.Contains(t, testutil.LastUserMessage(llm.Calls()[0][:2]), "<question>")
	assert.Equal(t, []core.EventKind{core.EventForcedAnswer, core.EventAgentResult}, sink.Kinds())
}

func TestMemberAgent_AddContextAccumulates(t *testing.T) {
	m := newMember(t, model.NewMockModel(), "m")
	m.AddContext("one")
	m.AddContext("two")
	assert.Equal(t, "\none\n\ntwo\n", m.Context())
}
