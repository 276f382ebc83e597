package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/viant/mcp-protocol/schema"
	mcpsrv "github.com/viant/mcp/server"

	cmcp "github.com/viant/checklister/mcp"
	"github.com/viant/checklister/segment"
	"github.com/viant/checklister/service"
	"github.com/viant/checklister/session"
	"github.com/viant/checklister/web"
)

const defaultAddr = "127.0.0.1:8501"

func serveCmd(args []string) {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := flags.String("addr", "", "web address (default from config or "+defaultAddr+")")
	configPath := flags.String("config", "", "config yaml (optional, defaults to ~/checklister/config.yaml if present)")
	model := flags.String("model", "", "sentence model: "+strings.Join(segment.Models(), "|"))
	preview := flags.Int("preview", 0, "preview rows per file (default 10)")
	maxUpload := flags.Int64("max-upload", -1, "max upload request size in bytes, 0 = unlimited (default from config)")
	sessions := flags.Int("sessions", 0, "max live sessions kept in memory")
	mcpAddr := flags.String("mcp-addr", "", "MCP server address (optional, default from config)")
	metricsLog := flags.Bool("metrics-log", false, "log mcp metric lines")
	flags.Parse(args)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := loadConfig(resolveConfigPath(*configPath))
	svc, modelName := newService(cfg, *model, *preview)

	maxUploadVal := cfg.Server.MaxUploadBytes
	if *maxUpload >= 0 {
		maxUploadVal = *maxUpload
	}
	sessionsVal := cfg.Server.Sessions
	if *sessions > 0 {
		sessionsVal = *sessions
	}
	handler := web.New(svc, session.New(sessionsVal, session.WithMaxResults(cfg.Server.SessionResults)),
		web.WithMaxUploadBytes(maxUploadVal),
		web.WithModel(modelName),
		web.WithLogf(log.Printf),
	)

	httpServer := &http.Server{
		Addr:              resolveAddr(*addr, cfg),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Printf("checklister listening on %s (model=%s)", httpServer.Addr, modelName)

	errCh := make(chan error, 2)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	mcpServer := startMCP(ctx, svc, resolveMCPAddr(*mcpAddr, cfg), *metricsLog, errCh)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %v", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if mcpServer != nil {
		if err := mcpServer.Shutdown(ctxShutdown); err != nil {
			log.Printf("mcp shutdown error: %v", err)
		}
	}
	log.Printf("checklister stopped")
}

func startMCP(ctx context.Context, svc *service.Service, addr string, metricsLog bool, errCh chan<- error) *http.Server {
	if addr == "" {
		return nil
	}
	server, err := mcpsrv.New(
		mcpsrv.WithImplementation(schema.Implementation{Name: "checklister-mcp", Version: "0.1.0"}),
		mcpsrv.WithNewHandler(cmcp.NewHandler(svc, metricsLog)),
		mcpsrv.WithEndpointAddress(addr),
		mcpsrv.WithRootRedirect(true),
		mcpsrv.WithStreamableURI("/mcp"),
	)
	if err != nil {
		log.Fatal(err)
	}
	server.UseStreamableHTTP(true)
	httpServer := server.HTTP(ctx, addr)
	httpServer.ReadHeaderTimeout = 10 * time.Second
	httpServer.ReadTimeout = 60 * time.Second
	httpServer.WriteTimeout = 60 * time.Second
	httpServer.IdleTimeout = 120 * time.Second

	log.Printf("checklister-mcp listening on %s", httpServer.Addr)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	return httpServer
}

func resolveConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	candidate, err := service.ExpandUserPath("~/checklister/config.yaml")
	if err != nil {
		return ""
	}
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}

func resolveAddr(flagAddr string, cfg *service.Config) string {
	if flagAddr != "" {
		return flagAddr
	}
	if cfg != nil && cfg.Server.Addr != "" {
		return cfg.Server.Addr
	}
	return defaultAddr
}

func resolveMCPAddr(flagAddr string, cfg *service.Config) string {
	if flagAddr != "" {
		return flagAddr
	}
	if cfg != nil {
		if cfg.MCPServer.Addr != "" {
			return cfg.MCPServer.Addr
		}
		if cfg.MCPServer.Port > 0 {
			return fmt.Sprintf("127.0.0.1:%d", cfg.MCPServer.Port)
		}
	}
	return ""
}
