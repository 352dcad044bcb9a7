// recipedog — a chat-app webhook bot that suggests fridge-friendly recipes
// and can walk the user through one step at a time.
//
// Usage:
//
//	recipedog [-verbose] [-quiet] [-log-file path]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mtakahash/recipedog/internal/bot"
	"github.com/mtakahash/recipedog/internal/config"
	"github.com/mtakahash/recipedog/internal/conversation"
	"github.com/mtakahash/recipedog/internal/engine"
	"github.com/mtakahash/recipedog/internal/gpt"
	"github.com/mtakahash/recipedog/internal/line"
	"github.com/mtakahash/recipedog/internal/logger"
	"github.com/mtakahash/recipedog/internal/persona"
	"github.com/mtakahash/recipedog/internal/storage"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "stderr", "file to write logs to (use \"stderr\" to log to console)")
	flag.Parse()

	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Rotate file logs so a long-lived deployment doesn't fill the disk.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		logOut = &lumberjack.Logger{
			Filename:   *logFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
		}
	}

	// Redirect Go's default log package (used by some third-party libs)
	// to the same output.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Wire dependencies.
	store := storage.NewMemoryStore(log.Named("store"))
	classifier := conversation.NewClassifier(store, log.Named("classify"))
	eng := engine.New(store, log.Named("engine"))
	agent := gpt.NewAgent(cfg.OpenAIKey, log.Named("gpt"), gpt.WithModel(cfg.OpenAIModel))
	dispatcher := bot.New(classifier, eng, agent, agent, persona.NewFormatter(), log.Named("bot"),
		bot.WithGenerateTimeout(cfg.GenerateTimeout),
	)

	replier := line.NewClient(cfg.ChannelToken, log.Named("line"))
	webhook := line.NewWebhook(cfg.ChannelSecret, dispatcher, replier, log.Named("webhook"))
	server := line.NewServer(cfg.Addr, webhook, log.Named("http"))
	janitor := storage.NewJanitor(store, log.Named("janitor"),
		storage.WithTTL(cfg.SessionTTL),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(gctx) })
	g.Go(func() error { return janitor.Run(gctx) })

	log.Info("recipedog up (addr=%s, session ttl=%s)", cfg.Addr, cfg.SessionTTL)

	if err := g.Wait(); err != nil {
		log.Error("exiting: %v", err)
		os.Exit(1)
	}
}
