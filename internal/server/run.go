package server

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/edgefn/translation-gateway/internal/config"
	"github.com/edgefn/translation-gateway/internal/logx"
)

func Run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	accessLogger, accessClose, accessColor, err := openAccessLogger(cfg)
	if err != nil {
		return fmt.Errorf("init access log: %w", err)
	}
	if accessClose != nil {
		defer func() { _ = accessClose.Close() }()
	}

	st := NewState(cfg)

	stopWatch, err := config.Watch(cfgPath, st.Apply)
	if err != nil {
		log.Printf("config watch disabled: %v", err)
	} else {
		defer stopWatch()
	}
	installReloadSignalHandler(cfgPath, st)

	engine := NewRouter(st, accessLogger, accessColor)

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond,
	}

	log.Printf("translation-gateway listening on %s (upstream provider: %s)", cfg.Server.Listen, cfg.Upstream.Provider)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// SIGHUP forces a reload even when the fsnotify watch missed the change.
func installReloadSignalHandler(cfgPath string, st *State) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGHUP)
	go func() {
		for range ch {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				log.Printf("reload on SIGHUP skipped: %v", err)
				continue
			}
			st.Apply(cfg)
			log.Printf("reload ok")
		}
	}()
}

func openAccessLogger(cfg *config.Config) (*log.Logger, io.Closer, bool, error) {
	if !cfg.AccessLogEnabled() {
		return nil, nil, false, nil
	}

	path := strings.TrimSpace(cfg.Logging.AccessLogPath)
	if path == "" {
		return log.New(os.Stdout, "", log.LstdFlags), nil, logx.StdoutColorEnabled(), nil
	}

	dir := filepath.Dir(path)
	if strings.TrimSpace(dir) != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, false, err
		}
	}
	// #nosec G304 -- access_log_path comes from trusted config/env.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, false, err
	}
	return log.New(f, "", log.LstdFlags), f, false, nil
}
