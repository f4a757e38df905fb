package ask

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChatter struct {
	system string
	user   string
	answer string
	err    error
}

func (r *recordingChatter) Chat(_ context.Context, system, user string) (string, error) {
	r.system = system
	r.user = user
	return r.answer, r.err
}

func TestExplainIncludesCode(t *testing.T) {
	t.Parallel()

	chatter := &recordingChatter{answer: "  It sums the list.\n"}
	svc := NewService(chatter)

	got, err := svc.Explain(context.Background(), "sum(values)")
	require.NoError(t, err)
	assert.Equal(t, "It sums the list.", got)
	assert.Contains(t, chatter.user, "sum(values)")
	assert.Equal(t, systemPrompt, chatter.system)
}

func TestFixIncludesCode(t *testing.T) {
	t.Parallel()

	chatter := &recordingChatter{answer: "use :="}
	svc := NewService(chatter)

	_, err := svc.Fix(context.Background(), "x = 1")
	require.NoError(t, err)
	assert.Contains(t, chatter.user, "x = 1")
	assert.Contains(t, chatter.user, "corrected version")
}

func TestQuestionRequiresText(t *testing.T) {
	t.Parallel()

	svc := NewService(&recordingChatter{})
	_, err := svc.Question(context.Background(), "   ", "")
	assert.Error(t, err)
}

func TestQuestionAppendsCodeWhenPresent(t *testing.T) {
	t.Parallel()

	chatter := &recordingChatter{answer: "yes"}
	svc := NewService(chatter)

	_, err := svc.Question(context.Background(), "Is this thread safe?", "var mu sync.Mutex")
	require.NoError(t, err)
	assert.Contains(t, chatter.user, "Is this thread safe?")
	assert.Contains(t, chatter.user, "var mu sync.Mutex")
}

func TestChatErrorIsWrapped(t *testing.T) {
	t.Parallel()

	svc := NewService(&recordingChatter{err: assert.AnError})
	_, err := svc.Explain(context.Background(), "code")
	assert.ErrorIs(t, err, assert.AnError)
}
