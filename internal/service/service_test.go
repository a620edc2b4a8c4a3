package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iWorld-y/info_agent/pkg/engine"
	"github.com/iWorld-y/info_agent/pkg/search"
)

// fakeAgent 模拟引擎
type fakeAgent struct {
	searchReply *engine.SearchReply
	chatReply   *engine.ChatReply
	chatErr     error
}

func (f *fakeAgent) HandleSearch(ctx context.Context, query string, sources []string) *engine.SearchReply {
	return f.searchReply
}

func (f *fakeAgent) HandleChat(ctx context.Context, userID, prompt, project string) (*engine.ChatReply, error) {
	return f.chatReply, f.chatErr
}

func doRequest(t *testing.T, svc *ChatService, handler func(http.ResponseWriter, *http.Request), method, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestSearch_MissingQuery(t *testing.T) {
	svc := NewChatService(&fakeAgent{})

	for _, body := range []string{`{}`, `{"query":""}`, `{"query":"  "}`, `{"query":"", "sources":["reddit"]}`, `not json`} {
		w := doRequest(t, svc, svc.Search, http.MethodPost, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("响应不是合法 JSON: %v", err)
		}
		if resp["error"] == "" {
			t.Errorf("body %q: 缺少 error 字段", body)
		}
	}
}

func TestSearch_DegradedStill200(t *testing.T) {
	// 所有搜索源失败时引擎返回空集合和兜底回复，端点仍应返回 200
	svc := NewChatService(&fakeAgent{searchReply: &engine.SearchReply{
		Reply:   "Here's what I found online.",
		Summary: "Here's what I found online.",
	}})

	w := doRequest(t, svc, svc.Search, http.MethodPost, `{"query":"anything"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Reply   string          `json:"reply"`
		Sources json.RawMessage `json:"sources"`
		Images  json.RawMessage `json:"images"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	// 空结果要编码成 [] 而不是 null
	if string(resp.Sources) != "[]" {
		t.Errorf("sources = %s, want []", resp.Sources)
	}
	if string(resp.Images) != "[]" {
		t.Errorf("images = %s, want []", resp.Images)
	}
	if resp.Reply == "" {
		t.Error("reply 为空")
	}
}

func TestSearch_Success(t *testing.T) {
	svc := NewChatService(&fakeAgent{searchReply: &engine.SearchReply{
		Reply:   "synopsis",
		Summary: "synopsis",
		Sources: []search.Result{
			{Title: "t1", Snippet: "s1", URL: "https://example.com/1", Image: "https://example.com/1.jpg", Source: "gnews"},
		},
		Images: []string{"https://example.com/1.jpg"},
	}})

	w := doRequest(t, svc, svc.Search, http.MethodPost, `{"query":"elections"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Sources []map[string]string `json:"sources"`
		Summary string              `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Sources) != 1 {
		t.Fatalf("sources len = %d, want 1", len(resp.Sources))
	}
	card := resp.Sources[0]
	for _, key := range []string{"title", "snippet", "url", "image", "source"} {
		if card[key] == "" {
			t.Errorf("结果卡片缺少字段 %s: %v", key, card)
		}
	}
	if resp.Summary != "synopsis" {
		t.Errorf("summary = %q", resp.Summary)
	}
}

func TestSearch_MethodNotAllowed(t *testing.T) {
	svc := NewChatService(&fakeAgent{})
	w := doRequest(t, svc, svc.Search, http.MethodGet, "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestGenerate_Validation(t *testing.T) {
	svc := NewChatService(&fakeAgent{})

	cases := []string{
		`{}`,
		`{"prompt":"hi"}`,
		`{"userId":"u1"}`,
		`{"prompt":"","userId":"u1"}`,
		`{"prompt":"hi","userId":" "}`,
	}
	for _, body := range cases {
		w := doRequest(t, svc, svc.Generate, http.MethodPost, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestGenerate_Success(t *testing.T) {
	svc := NewChatService(&fakeAgent{chatReply: &engine.ChatReply{
		Reply: "habari!",
		News: []search.Result{
			{Title: "n1", Snippet: "s1", Source: "gnews"},
			{Title: "n2", Snippet: "s2", Source: "reddit"},
		},
	}})

	w := doRequest(t, svc, svc.Generate, http.MethodPost, `{"prompt":"find trending news about elections","userId":"u1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Reply string              `json:"reply"`
		News  []map[string]string `json:"news"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Reply == "" {
		t.Error("reply 为空")
	}
	if len(resp.News) != 2 {
		t.Errorf("news len = %d, want 2", len(resp.News))
	}
}

func TestGenerate_ModelFailure500(t *testing.T) {
	svc := NewChatService(&fakeAgent{chatErr: fmt.Errorf("model down")})

	w := doRequest(t, svc, svc.Generate, http.MethodPost, `{"prompt":"hi","userId":"u1"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] == "" {
		t.Error("缺少 error 字段")
	}
}

func TestGenerate_NoNewsOmitted(t *testing.T) {
	svc := NewChatService(&fakeAgent{chatReply: &engine.ChatReply{Reply: "plain"}})

	w := doRequest(t, svc, svc.Generate, http.MethodPost, `{"prompt":"hi","userId":"u1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if strings.Contains(w.Body.String(), `"news"`) {
		t.Errorf("没有搜索结果时不应返回 news 字段: %s", w.Body.String())
	}
}
