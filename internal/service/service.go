// Package service 实现两个 HTTP 端点的请求解析和响应编码。
package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iWorld-y/info_agent/internal/logger"
	"github.com/iWorld-y/info_agent/pkg/engine"
)

// Agent 引擎能力抽象，便于在测试中替换
type Agent interface {
	HandleSearch(ctx context.Context, query string, sources []string) *engine.SearchReply
	HandleChat(ctx context.Context, userID, prompt, project string) (*engine.ChatReply, error)
}

// ChatService HTTP 服务
type ChatService struct {
	agent Agent
}

// NewChatService 创建服务实例
func NewChatService(agent Agent) *ChatService {
	return &ChatService{agent: agent}
}

type searchRequest struct {
	Query   string   `json:"query"`
	Sources []string `json:"sources,omitempty"`
}

type searchResponse struct {
	Reply   string       `json:"reply"`
	Sources []resultCard `json:"sources"`
	Images  []string     `json:"images"`
	Summary string       `json:"summary"`
}

type generateRequest struct {
	Prompt  string `json:"prompt"`
	UserID  string `json:"userId"`
	Project string `json:"project,omitempty"`
}

type generateResponse struct {
	Reply string       `json:"reply"`
	News  []resultCard `json:"news,omitempty"`
}

// resultCard 返回给前端展示的结果卡片
type resultCard struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url,omitempty"`
	Image   string `json:"image,omitempty"`
	Source  string `json:"source"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Search 处理 POST /api/search
func (s *ChatService) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing query"})
		return
	}

	reply := s.agent.HandleSearch(r.Context(), req.Query, req.Sources)

	resp := searchResponse{
		Reply:   reply.Reply,
		Sources: make([]resultCard, 0, len(reply.Sources)),
		Images:  reply.Images,
		Summary: reply.Summary,
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	for _, src := range reply.Sources {
		resp.Sources = append(resp.Sources, resultCard{
			Title:   src.Title,
			Snippet: src.Snippet,
			URL:     src.URL,
			Image:   src.Image,
			Source:  src.Source,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// Generate 处理 POST /api/generate
func (s *ChatService) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing prompt"})
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing userId"})
		return
	}

	reply, err := s.agent.HandleChat(r.Context(), req.UserID, req.Prompt, req.Project)
	if err != nil {
		logger.Log.Errorf("对话处理失败 [%s]: %v", req.UserID, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to generate reply"})
		return
	}

	resp := generateResponse{Reply: reply.Reply}
	for _, card := range reply.News {
		resp.News = append(resp.News, resultCard{
			Title:   card.Title,
			Snippet: card.Snippet,
			URL:     card.URL,
			Image:   card.Image,
			Source:  card.Source,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorf("写响应失败: %v", err)
	}
}
