package store

import (
	"context"

	"github.com/iWorld-y/info_agent/pkg/model"
)

// Store 对话记录的键值存储抽象。
// Load 永远不会失败：记录不存在或无法解析时返回全新的默认记录。
// Save 的错误由调用方记录日志后吞掉，不会阻塞响应。
type Store interface {
	Load(ctx context.Context, userID string) *model.Conversation
	Save(ctx context.Context, userID string, conv *model.Conversation) error
	Close() error
}
