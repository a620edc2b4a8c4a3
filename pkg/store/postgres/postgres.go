// Package postgres 把对话记录保存在 PostgreSQL 里，每个用户一行。
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/info_agent/internal/config"
	"github.com/iWorld-y/info_agent/pkg/model"
	"github.com/iWorld-y/info_agent/pkg/store"
)

// Store PostgreSQL 存储实现
type Store struct {
	db      *sql.DB
	persona string
}

// Ensure Store implements store.Store
var _ store.Store = (*Store)(nil)

// New 建立连接并初始化表结构
func New(cfg config.DBConfig, persona string) (*Store, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, persona: persona}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Store) initSchema() error {
	query := `CREATE TABLE IF NOT EXISTS conversations (
		user_id TEXT PRIMARY KEY,
		data JSONB NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to execute query %s: %w", query, err)
	}
	return nil
}

// Load 读取用户的对话记录，不存在或损坏时返回默认记录
func (s *Store) Load(ctx context.Context, userID string) *model.Conversation {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM conversations WHERE user_id = $1`, userID).Scan(&data)
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

// Save 覆盖写入用户的对话记录，后写的覆盖先写的
func (s *Store) Save(ctx context.Context, userID string, conv *model.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("marshal conversation failed: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversations (user_id, data, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = CURRENT_TIMESTAMP`,
		userID, data)
	if err != nil {
		return fmt.Errorf("write conversation failed: %w", err)
	}
	return nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	return s.db.Close()
}
