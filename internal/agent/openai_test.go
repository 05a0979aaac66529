package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	reply *schema.Message
	err   error
	input []*schema.Message
}

func (f *fakeChat) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.input = input
	return f.reply, f.err
}

func TestOpenAICompleterBuildsSystemAndUserMessages(t *testing.T) {
	t.Parallel()

	chat := &fakeChat{reply: schema.AssistantMessage("answer", nil)}
	c := &OpenAICompleter{chat: chat}

	got, err := c.Complete(context.Background(), "sys", "usr")
	require.NoError(t, err)
	assert.Equal(t, "answer", got)
	require.Len(t, chat.input, 2)
	assert.Equal(t, schema.System, chat.input[0].Role)
	assert.Equal(t, "sys", chat.input[0].Content)
	assert.Equal(t, schema.User, chat.input[1].Role)
	assert.Equal(t, "usr", chat.input[1].Content)
}

func TestOpenAICompleterEmptyContentIsError(t *testing.T) {
	t.Parallel()

	c := &OpenAICompleter{chat: &fakeChat{reply: schema.AssistantMessage("", nil)}}

	_, err := c.Complete(context.Background(), "sys", "usr")
	assert.ErrorIs(t, err, errEmptyCompletion)
}

func TestOpenAICompleterAgainstCompatibleServer(t *testing.T) {
	t.Parallel()

	models := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		models <- body.Model

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "We advise on tax credits."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer srv.Close()

	c, err := NewOpenAICompleter(context.Background(), "test-key", WithBaseURL(srv.URL), WithTimeout(time.Second))
	require.NoError(t, err)

	got, err := c.Complete(context.Background(), "sys", "usr")
	require.NoError(t, err)
	assert.Equal(t, "We advise on tax credits.", got)
	assert.Equal(t, OpenAIModel, <-models)
	assert.Equal(t, "openai", c.Name())
}

func TestOpenAICompleterServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limit", "type": "requests"}}`))
	}))
	defer srv.Close()

	c, err := NewOpenAICompleter(context.Background(), "test-key", WithBaseURL(srv.URL), WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "sys", "usr")
	assert.Error(t, err)
}
