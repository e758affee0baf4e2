package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-assistant/backend/internal/client"
	"chat-assistant/backend/internal/model"
	"chat-assistant/backend/internal/service"
	"chat-assistant/backend/internal/stream"
)

const testChatID = "0b6f3c1e-2d4a-4f57-9a55-3c1d2e4f5a6b"

// fakeAPI mimics the chat server and records the calls it receives in order.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	createStatus int
	streamStatus int
	stream       []string
	saved        []service.AddMessageRequest
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	f := &fakeAPI{createStatus: http.StatusCreated, streamStatus: http.StatusOK}
	r := chi.NewRouter()

	r.Post("/api/chats", func(w http.ResponseWriter, r *http.Request) {
		var req service.CreateChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.record("create:" + req.Message)
		if f.createStatus != http.StatusCreated {
			writeJSON(w, f.createStatus, map[string]string{"error": "Internal server error"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"chat": model.Chat{ID: testChatID, UserID: r.Header.Get("x-user-id"), Title: "T"},
		})
	})
	r.Get("/api/chats", func(w http.ResponseWriter, r *http.Request) {
		f.record("list:" + r.Header.Get("x-user-id"))
		writeJSON(w, http.StatusOK, map[string]any{"chats": []model.Chat{{ID: testChatID}}})
	})
	r.Delete("/api/chats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "deleted": 3})
	})
	r.Get("/api/chats/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") != testChatID {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Chat not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"chat": model.Chat{ID: testChatID, Title: "T"}})
	})
	r.Patch("/api/chats/{id}", func(w http.ResponseWriter, r *http.Request) {
		var req service.UpdateTitleRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.record("rename:" + req.Title)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})
	r.Get("/api/chats/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"messages": []model.Message{
			{ID: "m1", ChatID: testChatID, Role: model.RoleUser, Content: "earlier"},
		}})
	})
	r.Post("/api/chats/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		var req service.AddMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.record("add:" + req.Role + ":" + req.Content)
		f.mu.Lock()
		f.saved = append(f.saved, req)
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]any{"message": model.Message{
			ID: "m", ChatID: chi.URLParam(r, "id"), Role: req.Role, Content: req.Content,
		}})
	})
	streamHandler := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.record(name)
			if f.streamStatus != http.StatusOK {
				writeJSON(w, f.streamStatus, map[string]string{"error": "model not loaded"})
				return
			}
			w.Header().Set("Content-Type", "text/event-stream")
			w.WriteHeader(http.StatusOK)
			rc := http.NewResponseController(w)
			for _, chunk := range f.stream {
				_, _ = w.Write([]byte(chunk))
				_ = rc.Flush()
			}
		}
	}
	r.Post("/api/chat/stream", streamHandler("stream"))
	r.Post("/api/chat/email/rewrite", streamHandler("rewrite"))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_CRUD(t *testing.T) {
	ctx := context.Background()
	f, srv := newFakeAPI(t)
	c := client.New(srv.URL+"/", "alice")

	chats, err := c.ListChats(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "list:alice", f.Calls()[0])

	chat, err := c.GetChat(ctx, testChatID)
	require.NoError(t, err)
	assert.Equal(t, "T", chat.Title)

	_, err = c.GetChat(ctx, "missing")
	assert.True(t, client.IsNotFound(err))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Chat not found", apiErr.Message)

	require.NoError(t, c.RenameChat(ctx, testChatID, "Renamed"))
	assert.Contains(t, f.Calls(), "rename:Renamed")

	n, err := c.DeleteAllChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	messages, err := c.ListMessages(ctx, testChatID)
	require.NoError(t, err)
	assert.Equal(t, "earlier", messages[0].Content)
}

func TestClient_OpenStreamError(t *testing.T) {
	f, srv := newFakeAPI(t)
	f.streamStatus = http.StatusBadGateway
	c := client.New(srv.URL, "alice")

	_, err := c.OpenStream(context.Background(), &service.StreamRequest{Question: "q", Model: "m"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "model not loaded", apiErr.Message)
}

func recordStates(cv *client.Conversation) *[]client.State {
	var states []client.State
	cv.OnState = func(s client.State) { states = append(states, s) }
	return &states
}

func TestConversation_Persistent(t *testing.T) {
	ctx := context.Background()
	f, srv := newFakeAPI(t)
	f.stream = []string{
		`data: {"type":"reasoning","content":"hmm"}` + "\n\ndata: {\"type\":\"con",
		`tent","content":"Hel"}` + "\n",
		`data: {"type":"content","content":"lo"}` + "\n" + `data: {"done":true}` + "\n",
	}
	cv := client.NewConversation(client.New(srv.URL, "alice"), client.Persistent)
	states := recordStates(cv)

	var renders []string
	cv.OnUpdate = func(tr *stream.Transcript) { renders = append(renders, tr.Text()) }

	res, err := cv.Ask(ctx, "first question", client.AskOptions{Model: "llama3"})
	require.NoError(t, err)
	assert.Equal(t, "Hello", res.Text)
	assert.Equal(t, "hmm", res.Reasoning)
	assert.Equal(t, testChatID, res.ChatID)
	require.NotNil(t, res.Saved)
	assert.Equal(t, []string{"", "Hel", "Hello"}, renders)

	assert.Equal(t, []string{"create:first question", "stream", "add:assistant:Hello"}, f.Calls())
	assert.Equal(t, []client.State{client.StateSending, client.StateStreaming, client.StateFinalizing, client.StateIdle}, *states)

	// Later sends store the user message before the stream opens.
	f.stream = []string{"data: {\"content\":\"Again\"}\n", "data: {\"done\":true}\n"}
	_, err = cv.Ask(ctx, "second", client.AskOptions{Model: "llama3"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"create:first question", "stream", "add:assistant:Hello",
		"add:user:second", "stream", "add:assistant:Again",
	}, f.Calls())

	messages := cv.Messages()
	require.Len(t, messages, 4)
	assert.Equal(t, model.RoleUser, messages[2].Role)
	assert.Equal(t, "Again", messages[3].Content)
	assert.Equal(t, client.StateIdle, cv.State())
}

func TestConversation_StreamErrorKeepsPartialText(t *testing.T) {
	f, srv := newFakeAPI(t)
	f.stream = []string{
		"data: {\"type\":\"content\",\"content\":\"Partial\"}\n",
		"data: {\"error\":\"backend crashed\"}\ndata: {\"content\":\" lost\"}\n",
	}
	cv := client.NewConversation(client.New(srv.URL, "alice"), client.Persistent)
	states := recordStates(cv)

	res, err := cv.Ask(context.Background(), "q", client.AskOptions{Model: "m"})
	var streamErr *stream.StreamError
	require.ErrorAs(t, err, &streamErr)
	assert.Equal(t, "backend crashed", streamErr.Message)
	require.NotNil(t, res)
	assert.Equal(t, "Partial", res.Text)
	assert.Nil(t, res.Saved)

	assert.Equal(t, []string{"create:q", "stream"}, f.Calls())
	assert.Equal(t, []client.State{client.StateSending, client.StateStreaming, client.StateAborted, client.StateIdle}, *states)

	messages := cv.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "Partial", messages[1].Content)
}

func TestConversation_BlankAnswerIsNotSaved(t *testing.T) {
	f, srv := newFakeAPI(t)
	f.stream = []string{"data: {\"content\":\"  \\n \"}\n", "data: {\"done\":true}\n"}
	cv := client.NewConversation(client.New(srv.URL, "alice"), client.Persistent)

	res, err := cv.Ask(context.Background(), "q", client.AskOptions{Model: "m"})
	require.NoError(t, err)
	assert.Nil(t, res.Saved)
	assert.Equal(t, []string{"create:q", "stream"}, f.Calls())
}

func TestConversation_Temporary(t *testing.T) {
	f, srv := newFakeAPI(t)
	f.stream = []string{"data: {\"content\":\"Ephemeral\"}\n"}
	cv := client.NewConversation(client.New(srv.URL, "alice"), client.Temporary)

	res, err := cv.Ask(context.Background(), "q", client.AskOptions{Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "Ephemeral", res.Text)
	assert.Empty(t, res.ChatID)
	assert.Equal(t, []string{"stream"}, f.Calls())
	assert.Len(t, cv.Messages(), 2)
}

func TestConversation_CreateFailureOpensNoStream(t *testing.T) {
	f, srv := newFakeAPI(t)
	f.createStatus = http.StatusInternalServerError
	cv := client.NewConversation(client.New(srv.URL, "alice"), client.Persistent)
	states := recordStates(cv)

	_, err := cv.Ask(context.Background(), "q", client.AskOptions{Model: "m"})
	require.Error(t, err)
	assert.Equal(t, []string{"create:q"}, f.Calls())
	assert.Equal(t, []client.State{client.StateSending, client.StateAborted, client.StateIdle}, *states)
	assert.Empty(t, cv.ChatID())
}

func TestConversation_RewriteEmail(t *testing.T) {
	f, srv := newFakeAPI(t)
	f.stream = []string{"data: {\"type\":\"content\",\"content\":\"Dear team,\"}\n", "data: {\"done\":true}\n"}
	cv := client.NewConversation(client.New(srv.URL, "alice"), client.Persistent)

	res, err := cv.RewriteEmail(context.Background(), "hey send file", "formal")
	require.NoError(t, err)
	assert.Equal(t, "Dear team,", res.Text)
	assert.Equal(t, []string{"create:hey send file", "rewrite", "add:assistant:Dear team,"}, f.Calls())
}

func TestConversation_Busy(t *testing.T) {
	f, srv := newFakeAPI(t)
	f.stream = []string{"data: {\"done\":true}\n"}
	cv := client.NewConversation(client.New(srv.URL, "alice"), client.Temporary)

	var nested error
	cv.OnState = func(s client.State) {
		if s == client.StateStreaming {
			_, nested = cv.Ask(context.Background(), "again", client.AskOptions{Model: "m"})
		}
	}
	_, err := cv.Ask(context.Background(), "q", client.AskOptions{Model: "m"})
	require.NoError(t, err)
	assert.ErrorIs(t, nested, client.ErrBusy)
}

func TestResumeConversation(t *testing.T) {
	f, srv := newFakeAPI(t)
	f.stream = []string{"data: {\"content\":\"ok\"}\n"}
	cv, err := client.ResumeConversation(context.Background(), client.New(srv.URL, "alice"), testChatID)
	require.NoError(t, err)
	assert.Len(t, cv.Messages(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = cv.Ask(ctx, "follow-up", client.AskOptions{Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, []string{"add:user:follow-up", "stream", "add:assistant:ok"}, f.Calls())
}
