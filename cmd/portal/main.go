package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/application/auth"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/application/permissao"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/infrastructure/api"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/infrastructure/storage"
	httpRouter "github.com/leandromunizdev/portal-gerenciamento-cultos/internal/interfaces/http"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/pkg/config"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.API.BaseURL).
		Msg("iniciando portal")

	store, err := storage.Abrir(cfg.Sessao.DBPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir armazenamento de sessões")
	}
	defer store.Fechar()

	client := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, log)

	avaliador := permissao.NovoAvaliador(cfg.Auth.PerfisAdministradores)
	gerenciador := auth.NovoGerenciador(store, client, avaliador, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Gerenciador: gerenciador,
		NomeCookie:  cfg.Sessao.CookieName,
		AppName:     cfg.App.Name,
	})

	if cfg.HTTP.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.HTTP.MetricsAddr, mux); err != nil {
				log.Error().Err(err).Msg("listener de métricas finalizado")
			}
		}()
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("portal encerrado")
}
