package main

import (
	"os"

	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"reva/internal/assistant"
	"reva/internal/audio"
	"reva/internal/config"
	"reva/internal/ipc"
	"reva/internal/knowledge"
	"reva/internal/proxy"
	"reva/internal/tts"
	"reva/pkg/stt"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	socket := cli.StringP("socket", "s", ipc.DefaultSocket, "Control socket path")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up")

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	log.Debug("Loaded config")

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.ProxyAddr != "" {
		httpClient, err := proxy.NewSocksClient(cfg.ProxyAddr)
		if err != nil {
			log.Error("Failed to dial socks proxy", "proxy", cfg.ProxyAddr, "err", err)
			os.Exit(1)
		}
		opts = append(opts, option.WithHTTPClient(httpClient))
		log.Debug("Loaded proxy")
	}
	client := openai.NewClient(opts...)

	rec := audio.NewRecorder()
	if err := rec.Init(); err != nil {
		log.Error("Failed to init audio", "err", err)
		os.Exit(1)
	}
	defer rec.Close()

	log.Debug("Loaded recorder")

	whisper, err := stt.NewTranscriber(cfg.WhisperModel)
	if err != nil {
		log.Error("Failed to init whisper", "err", err)
		os.Exit(1)
	}
	defer whisper.Close()

	log.Debug("Loaded whisper")

	// Knowledge base is assumed present; failing to load it is fatal.
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

	log.Debug("Loaded knowledge base", "snippets", len(kb.Snippets()))

	call := &call{
		rec:       rec,
		whisper:   whisper,
		retriever: knowledge.NewRetriever(kb, index, 2),
		assist:    assistant.New(assistant.NewOpenAICompleter(client, cfg.ChatModel), assistant.DemoClient()),
		synth:     tts.NewSynthesizer(client, cfg.Voice),
	}

	log.Info("Boot up - successful")

	if err := ipc.StartServer(*socket, func(msg ipc.ControlMessage) {
		switch msg.Cmd {
		case "call":
			call.Run()
		case "say":
			call.TurnFromFile(msg.Path)
		case "hangup":
			call.Hangup()
		default:
			log.Warn("Unknown command", "cmd", msg.Cmd)
		}
	}); err != nil {
		log.Error("Failed ipc server", "err", err)
		os.Exit(1)
	}

	select {}
}
