// Package file 以每个用户一个 JSON 文件的形式保存对话记录。
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iWorld-y/info_agent/pkg/model"
	"github.com/iWorld-y/info_agent/pkg/store"
)

// Store 文件存储实现
type Store struct {
	dir     string
	persona string
}

// Ensure Store implements store.Store
var _ store.Store = (*Store)(nil)

// New 创建文件存储。dir 为空时使用系统临时目录下的 info_agent 子目录。
func New(dir, persona string) (*Store, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "info_agent")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir failed: %w", err)
	}
	return &Store{dir: dir, persona: persona}, nil
}

// Load 读取用户的对话记录，不存在或损坏时返回默认记录
func (s *Store) Load(ctx context.Context, userID string) *model.Conversation {
	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		return model.NewConversation(userID, s.persona)
	}

	var conv model.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return model.NewConversation(userID, s.persona)
	}

	conv.UserID = userID
	conv.EnsureSystem(s.persona)
	return &conv
}

// Save 覆盖写入用户的对话记录
func (s *Store) Save(ctx context.Context, userID string, conv *model.Conversation) error {
	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal conversation failed: %w", err)
	}
	if err := os.WriteFile(s.path(userID), data, 0o644); err != nil {
		return fmt.Errorf("write conversation failed: %w", err)
	}
	return nil
}

// Close 文件存储无需清理
func (s *Store) Close() error { return nil }

// path 由 userID 推导存储路径，先做字符白名单过滤，防止路径穿越
func (s *Store) path(userID string) string {
	return filepath.Join(s.dir, sanitizeKey(userID)+".json")
}

// sanitizeKey 只保留字母、数字、点、下划线和连字符，其余替换为下划线
func sanitizeKey(key string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, key)
	// 防止 "..." 之类的键逃出数据目录
	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		cleaned = "_"
	}
	return cleaned
}
