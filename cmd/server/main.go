package main

import (
	"flag"
	"log"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/joho/godotenv"

	"github.com/iWorld-y/info_agent/internal/config"
	"github.com/iWorld-y/info_agent/internal/logger"
	"github.com/iWorld-y/info_agent/internal/server"
	"github.com/iWorld-y/info_agent/internal/service"
	"github.com/iWorld-y/info_agent/pkg/aggregator"
	"github.com/iWorld-y/info_agent/pkg/engine"
	"github.com/iWorld-y/info_agent/pkg/llm"
	"github.com/iWorld-y/info_agent/pkg/search/factory"
	"github.com/iWorld-y/info_agent/pkg/store"
	"github.com/iWorld-y/info_agent/pkg/store/file"
	"github.com/iWorld-y/info_agent/pkg/store/postgres"
	"github.com/iWorld-y/info_agent/pkg/summarizer"
)

var (
	// Name 是服务的名称
	Name string = "info_agent"
	// Version 是服务的版本号
	Version string
	// flagconf 是配置文件的路径命令行参数
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()

	// 先加载 .env，配置文件里的 ${VAR} 依赖这些环境变量
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Infof("启动 %s...", Name)

	// 初始化对话存储
	st, err := newStore(cfg)
	if err != nil {
		logger.Log.Fatalf("存储初始化失败: %v", err)
	}
	defer st.Close()

	// 初始化 LLM，未配置 Key 时对话端点不可用，搜索端点走兜底综述
	var gen llm.Generator
	if cfg.LLM.APIKey != "" {
		client, err := llm.NewClient(cfg.LLM, cfg.Concurrency)
		if err != nil {
			logger.Log.Fatalf("LLM 初始化失败: %v", err)
		}
		gen = client
	} else {
		logger.Log.Warn("未配置 LLM api_key，总结和对话功能降级")
	}

	// 初始化搜索源和聚合器
	searchers, order := factory.NewSearchers(cfg.Search)
	logger.Log.Infof("已启用搜索源: %v", order)
	agg := aggregator.New(searchers, order, cfg.Search.MaxResults, cfg.Search.MaxImages)

	summ := summarizer.New(gen)
	eng := engine.NewEngine(agg, summ, gen, st, cfg.Chat.Persona, cfg.Chat.MaxTurns)
	svc := service.NewChatService(eng)

	httpSrv := server.NewHTTPServer(cfg.Server, svc)

	app := kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Server(httpSrv),
	)

	if err := app.Run(); err != nil {
		logger.Log.Fatalf("服务退出: %v", err)
	}
}

// newStore 根据配置选择存储驱动，默认使用文件存储
func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return postgres.New(cfg.Store.DB, cfg.Chat.Persona)
	case "file", "":
		return file.New(cfg.Store.Dir, cfg.Chat.Persona)
	default:
		logger.Log.Warnf("未知存储驱动 %s，回退到文件存储", cfg.Store.Driver)
		return file.New(cfg.Store.Dir, cfg.Chat.Persona)
	}
}
