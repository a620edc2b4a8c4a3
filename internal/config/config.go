package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	LLM         LLMConfig         `yaml:"llm"`
	Chat        ChatConfig        `yaml:"chat"`
	Search      SearchConfig      `yaml:"search"`
	Store       StoreConfig       `yaml:"store"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// ChatConfig 对话相关配置
type ChatConfig struct {
	Persona  string `yaml:"persona"`   // system 指令，留空则使用内置默认值
	MaxTurns int    `yaml:"max_turns"` // 每个用户保留的最大消息数（不含 system）
}

// SearchConfig 搜索聚合相关配置
type SearchConfig struct {
	Order      []string      `yaml:"order"` // 搜索源优先级，留空使用默认顺序
	MaxResults int           `yaml:"max_results"`
	MaxImages  int           `yaml:"max_images"`
	GNews      GNewsConfig   `yaml:"gnews"`
	YouTube    YouTubeConfig `yaml:"youtube"`
	Reddit     RedditConfig  `yaml:"reddit"`
	RSS        RSSConfig     `yaml:"rss"`
}

// GNewsConfig GNews 配置
type GNewsConfig struct {
	APIKey string `yaml:"api_key"`
}

// YouTubeConfig YouTube Data API 配置
type YouTubeConfig struct {
	APIKey string `yaml:"api_key"`
}

// RedditConfig Reddit 配置
type RedditConfig struct {
	UserAgent string `yaml:"user_agent"`
}

// RSSConfig RSS 源配置
type RSSConfig struct {
	Feeds   []string `yaml:"feeds"`
	Timeout int      `yaml:"timeout"` // 单位秒
}

// StoreConfig 对话存储配置
type StoreConfig struct {
	Driver string   `yaml:"driver"` // file 或 postgres，默认 file
	Dir    string   `yaml:"dir"`    // file 驱动的数据目录
	DB     DBConfig `yaml:"db"`
}

// DBConfig 数据库相关配置
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig LLM 限流配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LoadConfig 从指定路径加载配置，配置中的 ${VAR} 会展开为环境变量
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
