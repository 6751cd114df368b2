package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kbolino/modinv/config"
	"github.com/kbolino/modinv/internal/api"
	"github.com/kbolino/modinv/internal/logger"
	"github.com/kbolino/modinv/internal/repl"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	fs := config.Flags(args[0])
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, err := config.LoadFlags(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		return 1
	}

	log, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		return 1
	}
	defer log.Close()

	switch cfg.Mode {
	case config.ModeServe:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		gin.SetMode(cfg.Server.Mode)
		if err := api.Serve(ctx, cfg.Server.Addr(), api.NewRouter(log), log); err != nil {
			log.Error("server failed", zap.Error(err))
			return 1
		}
	default:
		// reads from stdin block, so SIGINT keeps its default action
		session := repl.NewSession(cfg.REPL, log)
		if err := session.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
			log.Error("session failed", zap.Error(err))
			return 1
		}
	}
	return 0
}
