package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiforge/internal/common/errors"
	"uiforge/internal/storage"
)

func completionServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&Config{
		APIURL:    server.URL,
		APIKey:    "test-key",
		Model:     "gpt-4o-mini",
		Timeout:   5 * time.Second,
		MaxTokens: 1024,
	})
}

func completionReply(content string) string {
	reply := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	data, _ := json.Marshal(reply)
	return string(data)
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var got chatRequest
	client := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionReply("```jsx\nexport default function X() {}\n```")))
	})

	messages := []ChatMessage{
		{Role: storage.RoleSystem, Content: "system"},
		{Role: storage.RoleUser, Content: "make a card"},
	}
	content, err := client.Complete(context.Background(), messages)
	require.NoError(t, err)

	assert.Contains(t, content, "export default")
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, 1024, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "make a card", got.Messages[1].Content)
}

func TestCompleteUpstreamStatusError(t *testing.T) {
	client := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), []ChatMessage{{Role: storage.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeUpstream))
}

func TestCompleteUpstreamErrorBody(t *testing.T) {
	client := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "model overloaded", "type": "server_error"}}`))
	})

	_, err := client.Complete(context.Background(), []ChatMessage{{Role: storage.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeUpstream))
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestCompleteEmptyChoices(t *testing.T) {
	client := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	_, err := client.Complete(context.Background(), []ChatMessage{{Role: storage.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeUpstream))
}

func TestCompleteInvalidBody(t *testing.T) {
	client := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	})

	_, err := client.Complete(context.Background(), []ChatMessage{{Role: storage.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeUpstream))
}

func TestCompleteTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(completionReply("late")))
	}))
	t.Cleanup(server.Close)

	client := NewClient(&Config{
		APIURL:    server.URL,
		APIKey:    "test-key",
		Model:     "gpt-4o-mini",
		Timeout:   50 * time.Millisecond,
		MaxTokens: 16,
	})

	_, err := client.Complete(context.Background(), []ChatMessage{{Role: storage.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeTimeout))
}

func TestBuildGenerateMessages(t *testing.T) {
	session := &storage.Session{
		Messages: []storage.Message{
			{Role: storage.RoleUser, Content: "make a card"},
			{Role: storage.RoleAssistant, Content: "```jsx\nold code\n```"},
		},
	}

	messages := BuildGenerateMessages(session, "make it blue")
	require.Len(t, messages, 4)
	assert.Equal(t, storage.RoleSystem, messages[0].Role)
	assert.Equal(t, "make a card", messages[1].Content)
	assert.Equal(t, "make it blue", messages[3].Content)
}

func TestBuildRefineMessagesEmbedsCode(t *testing.T) {
	session := &storage.Session{
		Code: storage.ComponentCode{JSX: "export default function Card() {}", CSS: ".card { color: red }"},
	}

	messages := BuildRefineMessages(session, "round the corners")
	last := messages[len(messages)-1]
	assert.Equal(t, storage.RoleUser, last.Role)
	assert.Contains(t, last.Content, "export default function Card()")
	assert.Contains(t, last.Content, ".card { color: red }")
	assert.Contains(t, last.Content, "round the corners")
	assert.Contains(t, last.Content, "not a diff")
}

func TestBuildTitleMessages(t *testing.T) {
	session := &storage.Session{
		Messages: []storage.Message{{Role: storage.RoleUser, Content: "make a pricing card"}},
	}

	messages := BuildTitleMessages(session)
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0].Content, `{"title"`)
	assert.Equal(t, "make a pricing card", messages[1].Content)
}

func TestTranscriptLimit(t *testing.T) {
	session := &storage.Session{}
	for i := 0; i < transcriptLimit+10; i++ {
		session.Messages = append(session.Messages, storage.Message{Role: storage.RoleUser, Content: "turn"})
	}

	messages := BuildGenerateMessages(session, "latest")
	// system + capped transcript + new prompt
	assert.Len(t, messages, transcriptLimit+2)
}
