package web

import (
	"context"
	"edusync/internal/core"
	"edusync/internal/lookup"
	"edusync/pkg"
	"edusync/src/model"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	err    error
	topics []string
}

func (f *fakeRunner) Run(ctx context.Context, topic string) (*pkg.Result, error) {
	f.topics = append(f.topics, topic)
	if f.err != nil {
		return nil, f.err
	}
	return &pkg.Result{
		Topic:        topic,
		Research:     "Research about " + topic,
		Quiz:         "Q: What is " + topic + "? A: <a thing>",
		Explanations: "Q/A: Q: What is it? A: a thing\nExplanation: because",
		ThreadID:     "ui-test",
		Strategy:     pkg.StrategyGraph,
	}, nil
}

// quizRunner returns a result with a fixed quiz
type quizRunner struct {
	quiz string
}

func (q *quizRunner) Run(ctx context.Context, topic string) (*pkg.Result, error) {
	return &pkg.Result{Topic: topic, Research: "r", Quiz: q.quiz, Explanations: "e"}, nil
}

type fakeCheckpoints map[string]*core.Checkpoint

func (f fakeCheckpoints) Load(ctx context.Context, threadID string) (*core.Checkpoint, error) {
	if threadID == "broken" {
		return nil, errors.New("redis down")
	}
	checkpoint, ok := f[threadID]
	if !ok {
		return nil, core.ErrCheckpointNotFound
	}
	return checkpoint, nil
}

func newTestServer(t *testing.T, runner SessionRunner, checkpoints CheckpointLoader) *httptest.Server {
	t.Helper()
	s, err := NewServer(model.ServerConfig{Addr: ":0"}, runner, checkpoints, "llama-3.1-8b-instant")
	require.NoError(t, err)
	server := httptest.NewServer(s.Handler())
	t.Cleanup(server.Close)
	return server
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestIndexShowsForm(t *testing.T) {
	server := newTestServer(t, &fakeRunner{}, nil)

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Set GROQ_MODEL in .env to change model.")
	assert.Contains(t, body, "Enter a topic and click")
	assert.Contains(t, body, `<option value="llama-3.3-70b-versatile">`)
	assert.Contains(t, body, `<option value="llama-3.1-8b-instant" selected>`)
}

func TestUnknownPathIsNotFound(t *testing.T) {
	server := newTestServer(t, &fakeRunner{}, nil)

	resp, err := http.Get(server.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRunBlankTopicWarns(t *testing.T) {
	runner := &fakeRunner{}
	server := newTestServer(t, runner, nil)

	resp, err := http.PostForm(server.URL+"/run", url.Values{"topic": {"   "}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Contains(t, body, "Please enter a valid topic before running the session.")
	assert.NotContains(t, body, "Session completed.")
	assert.Empty(t, runner.topics)
}

func TestRunRendersTabs(t *testing.T) {
	runner := &fakeRunner{}
	server := newTestServer(t, runner, nil)

	resp, err := http.PostForm(server.URL+"/run", url.Values{"topic": {"  Photosynthesis "}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, []string{"Photosynthesis"}, runner.topics)
	assert.Contains(t, body, "Session completed.")
	for _, tab := range []string{">Research<", ">Quiz<", ">Explanations<", ">Raw<"} {
		assert.Contains(t, body, tab)
	}
	assert.Contains(t, body, "Research about Photosynthesis")
	assert.Contains(t, body, "&lt;a thing&gt;")
	assert.Contains(t, body, "&#34;thread_id&#34;: &#34;ui-test&#34;")
}

func TestRunRendersQuizRows(t *testing.T) {
	runner := &quizRunner{quiz: "Q: What is photosynthesis? A: Light to sugar.\n\n" +
		"Q: Where does it happen? A: In chloroplasts.\nnot a quiz line"}
	server := newTestServer(t, runner, nil)

	resp, err := http.PostForm(server.URL+"/run", url.Values{"topic": {"Photosynthesis"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Contains(t, body, "<tr><td>1</td><td>What is photosynthesis?</td><td>Light to sugar.</td></tr>")
	assert.Contains(t, body, "<tr><td>2</td><td>Where does it happen?</td><td>In chloroplasts.</td></tr>")
	assert.Contains(t, body, "<tr><td>3</td><td>not a quiz line</td><td></td></tr>")
	assert.NotContains(t, body, "<tr><td>4</td>")
}

func TestRunShowsError(t *testing.T) {
	server := newTestServer(t, &fakeRunner{err: errors.New("pipeline exploded")}, nil)

	resp, err := http.PostForm(server.URL+"/run", url.Values{"topic": {"Recursion"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Contains(t, body, "An error occurred: pipeline exploded")
	assert.NotContains(t, body, "Session completed.")
}

func TestCreateSessionAPI(t *testing.T) {
	server := newTestServer(t, &fakeRunner{}, nil)

	resp, err := http.Post(server.URL+"/api/sessions", "application/json", strings.NewReader(`{"topic":"Recursion"}`))
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var result pkg.Result
	require.NoError(t, sonic.Unmarshal([]byte(body), &result))
	assert.Equal(t, "Recursion", result.Topic)
	assert.Equal(t, pkg.StrategyGraph, result.Strategy)
}

func TestCreateSessionAPIRejectsBadInput(t *testing.T) {
	server := newTestServer(t, &fakeRunner{}, nil)

	for _, payload := range []string{`{"topic":"  "}`, `{}`, `not json`} {
		resp, err := http.Post(server.URL+"/api/sessions", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, payload)
	}
}

func TestCreateSessionAPIRunnerError(t *testing.T) {
	server := newTestServer(t, &fakeRunner{err: errors.New("boom")}, nil)

	resp, err := http.Post(server.URL+"/api/sessions", "application/json", strings.NewReader(`{"topic":"Recursion"}`))
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "boom")
}

func TestCheckpointAPI(t *testing.T) {
	checkpoints := fakeCheckpoints{
		"ui-1": {ThreadID: "ui-1", Node: "explain", Step: 3, State: core.State{Topic: "Recursion"}},
	}
	server := newTestServer(t, &fakeRunner{}, checkpoints)

	resp, err := http.Get(server.URL + "/api/checkpoints/ui-1")
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var checkpoint core.Checkpoint
	require.NoError(t, sonic.Unmarshal([]byte(body), &checkpoint))
	assert.Equal(t, "explain", checkpoint.Node)
	assert.Equal(t, "Recursion", checkpoint.State.Topic)

	resp, err = http.Get(server.URL + "/api/checkpoints/ui-missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/checkpoints/broken")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestCheckpointAPIWithoutStore(t *testing.T) {
	server := newTestServer(t, &fakeRunner{}, nil)

	resp, err := http.Get(server.URL + "/api/checkpoints/ui-1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, &fakeRunner{}, nil)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, "ok", readBody(t, resp))
}

func TestHealthzReportsFailedCheck(t *testing.T) {
	s, err := NewServer(model.ServerConfig{}, &fakeRunner{}, nil, "",
		WithHealthCheck(func(ctx context.Context) error { return errors.New("redis: connection refused") }))
	require.NoError(t, err)
	server := httptest.NewServer(s.Handler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, "connection refused")
}

func newToolServer(t *testing.T) *httptest.Server {
	t.Helper()
	summaryTool, err := lookup.NewSummaryTool(searcherFunc(func(ctx context.Context, topic string) (string, error) {
		if topic == "Offline" {
			return "", errors.New("summary request: dial tcp: refused")
		}
		return topic + " is a process", nil
	}))
	require.NoError(t, err)

	s, err := NewServer(model.ServerConfig{}, &fakeRunner{}, nil, "", WithTools(summaryTool))
	require.NoError(t, err)
	server := httptest.NewServer(s.Handler())
	t.Cleanup(server.Close)
	return server
}

type searcherFunc func(ctx context.Context, topic string) (string, error)

func (f searcherFunc) Search(ctx context.Context, topic string) (string, error) {
	return f(ctx, topic)
}

func TestListTools(t *testing.T) {
	server := newToolServer(t)

	resp, err := http.Get(server.URL + "/api/tools")
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tools []toolDescription
	require.NoError(t, sonic.Unmarshal([]byte(body), &tools))
	require.Len(t, tools, 1)
	assert.Equal(t, lookup.ToolName, tools[0].Name)
	assert.NotEmpty(t, tools[0].Desc)
}

func TestListToolsEmpty(t *testing.T) {
	server := newTestServer(t, &fakeRunner{}, nil)

	resp, err := http.Get(server.URL + "/api/tools")
	require.NoError(t, err)
	assert.Equal(t, "[]", readBody(t, resp))
}

func TestInvokeTool(t *testing.T) {
	server := newToolServer(t)

	resp, err := http.Post(server.URL+"/api/tools/"+lookup.ToolName, "application/json", strings.NewReader(`{"topic":"Photosynthesis"}`))
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out toolResponse
	require.NoError(t, sonic.Unmarshal([]byte(body), &out))
	assert.Equal(t, lookup.ToolName, out.Tool)
	assert.Contains(t, out.Result, "Photosynthesis is a process")
}

func TestInvokeToolErrors(t *testing.T) {
	server := newToolServer(t)

	resp, err := http.Post(server.URL+"/api/tools/unknown", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Post(server.URL+"/api/tools/"+lookup.ToolName, "application/json", strings.NewReader(`{"topic":"Offline"}`))
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "refused")
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s, err := NewServer(model.ServerConfig{Addr: "127.0.0.1:0"}, &fakeRunner{}, nil, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	cancel()

	assert.NoError(t, <-done)
}
