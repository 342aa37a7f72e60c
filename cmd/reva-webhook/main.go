package main

import (
	"os"

	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"github.com/labstack/echo/v4"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"reva/internal/assistant"
	"reva/internal/config"
	"reva/internal/knowledge"
	"reva/internal/proxy"
	"reva/internal/telephony"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	addr := cli.StringP("addr", "a", "", "Listen address (overrides REVA_LISTEN)")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	if *addr == "" {
		*addr = cfg.ListenAddr
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.ProxyAddr != "" {
		httpClient, err := proxy.NewSocksClient(cfg.ProxyAddr)
		if err != nil {
			log.Error("Failed to dial socks proxy", "proxy", cfg.ProxyAddr, "err", err)
			os.Exit(1)
		}
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	client := openai.NewClient(opts...)

	kb, err := knowledge.Load(cfg.DataDir)
	if err != nil {
		log.Error("Failed to load knowledge base", "dir", cfg.DataDir, "err", err)
		os.Exit(1)
	}

	index, err := knowledge.NewIndex(kb.Snippets())
	if err != nil {
		log.Error("Failed to index knowledge base", "err", err)
		os.Exit(1)
	}
	defer index.Close()

	log.Info("Knowledge base ready", "snippets", len(kb.Snippets()))

	assist := assistant.New(assistant.NewOpenAICompleter(client, cfg.ChatModel), assistant.DemoClient())
	handler := telephony.NewHandler(assist, knowledge.NewRetriever(kb, index, 2), telephony.NewFeed())

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	handler.Register(e)

	log.Info("Webhook listening", "addr", *addr)
	if err := e.Start(*addr); err != nil {
		log.Error("Server stopped", "err", err)
		os.Exit(1)
	}
}
