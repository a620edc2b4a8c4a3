package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/info_agent/internal/config"
)

// Generator 文本生成接口，便于在测试中替换真实模型
type Generator interface {
	Generate(ctx context.Context, messages []*schema.Message) (string, error)
}

// Client 封装 ChatModel，带限流和 429 重试
type Client struct {
	chatModel model.ChatModel
	limiter   *rate.Limiter
}

// Ensure Client implements Generator
var _ Generator = (*Client)(nil)

// NewClient 创建 LLM 客户端
func NewClient(cfg config.LLMConfig, conc config.ConcurrencyConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm api key is missing")
	}

	chatModel, err := openai.NewChatModel(context.Background(), &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	// Limit 设置为 RPM/60，Burst 设置为 QPS
	rpm := conc.RPM
	if rpm <= 0 {
		rpm = 60
	}
	qps := conc.QPS
	if qps <= 0 {
		qps = 1
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), qps)

	return &Client{chatModel: chatModel, limiter: limiter}, nil
}

// Generate 调用模型生成回复，429 时指数退避重试
func (c *Client) Generate(ctx context.Context, messages []*schema.Message) (string, error) {
	maxRetries := 3
	baseDelay := 2 * time.Second
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}

		resp, err := c.chatModel.Generate(ctx, messages)
		if err != nil {
			if strings.Contains(err.Error(), "429") || strings.Contains(strings.ToLower(err.Error()), "too many requests") {
				lastErr = err
				if i < maxRetries {
					time.Sleep(baseDelay * time.Duration(1<<i))
					continue
				}
			}
			return "", err
		}

		return strings.TrimSpace(resp.Content), nil
	}
	return "", lastErr
}
