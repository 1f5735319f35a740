// Command serve runs the development web server. It serves the static web
// directory (index.html, wasm_exec.js and the compiled main.wasm) and
// renders a PNG preview of the configured stage's first frame at
// /preview.png, which is handy for checking stage files without a browser
// game session.
package main

import (
	"context"
	"flag"
	"image/png"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/barragelab/barrage/config"
	"github.com/barragelab/barrage/engine"
	"github.com/barragelab/barrage/game"
	"github.com/barragelab/barrage/pattern"
	"github.com/barragelab/barrage/render/imagecanvas"
	"github.com/barragelab/barrage/stage"
)

func main() {
	var (
		addr      = flag.String("addr", "", "Listen address (default: $BARRAGE_ADDR)")
		webDir    = flag.String("web", "", "Static asset directory (default: $BARRAGE_WEB_DIR)")
		stagePath = flag.String("stage", "", "Stage YAML file for /preview.png (default: embedded opening stage)")
	)
	flag.Parse()

	cfg, err := config.Parse()
	if err != nil {
		config.Exitf("config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *webDir != "" {
		cfg.WebDir = *webDir
	}
	if *stagePath != "" {
		cfg.StagePath = *stagePath
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		config.Exitf("logger: %v", err)
	}
	defer log.Sync()

	engine.SetLogger(log.Named("engine"))
	pattern.SetLogger(log.Named("pattern"))
	game.SetLogger(log.Named("game"))

	if err := run(cfg, log); err != nil {
		log.Fatal("serve failed", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	st, err := loadStage(cfg.StagePath)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(cfg.WebDir)))
	mux.Handle("/preview.png", previewHandler(st, log))

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      logRequests(mux, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("serving",
		zap.String("addr", cfg.Addr),
		zap.String("web", cfg.WebDir),
		zap.String("stage", st.Name))
	return srv.ListenAndServe()
}

func loadStage(path string) (*stage.Stage, error) {
	if path == "" {
		return stage.Default()
	}
	return stage.LoadFile(path)
}

// previewHandler renders the stage's first frame to a PNG. A fresh game is
// built per request so previews always show frame zero.
func previewHandler(st *stage.Stage, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		patterns, err := loadPatterns(ctx, st)
		if err != nil {
			log.Error("load patterns", zap.Error(err))
			http.Error(w, "stage pattern failed", http.StatusInternalServerError)
			return
		}
		if patterns != nil {
			defer patterns.Close(ctx)
		}

		g := game.New(st, patterns)
		if err := g.Initialize(ctx); err != nil {
			log.Error("initialize preview game", zap.Error(err))
			http.Error(w, "stage failed to initialize", http.StatusInternalServerError)
			return
		}

		canvas := imagecanvas.New(int(st.Canvas.Width), int(st.Canvas.Height))
		g.Draw(canvas)

		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, canvas.Image()); err != nil {
			log.Error("encode preview", zap.Error(err))
		}
	})
}

func loadPatterns(ctx context.Context, st *stage.Stage) (*pattern.Registry, error) {
	var reg *pattern.Registry
	for _, e := range st.Enemies {
		if e.Pattern == "" {
			continue
		}
		if reg == nil {
			reg = pattern.NewRegistry(ctx)
		}
		data, err := os.ReadFile(e.Pattern)
		if err != nil {
			_ = reg.Close(ctx)
			return nil, err
		}
		if _, err := reg.Load(ctx, e.Pattern, data); err != nil {
			_ = reg.Close(ctx)
			return nil, err
		}
	}
	return reg, nil
}

func logRequests(next http.Handler, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}
