package main

import (
	"context"
	"log"
	"time"

	"github.com/vibelabs/pov-video/internal/config"
	"github.com/vibelabs/pov-video/internal/db"
	"github.com/vibelabs/pov-video/internal/httpapi"
	"github.com/vibelabs/pov-video/internal/httpapi/handlers"
	"github.com/vibelabs/pov-video/internal/store/rabbitmq"
	"github.com/vibelabs/pov-video/internal/store/redisstore"
	"github.com/vibelabs/pov-video/internal/synth"
	"github.com/vibelabs/pov-video/internal/video"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN)
	repo := video.NewRepo(gdb)

	var statuses video.StatusStore
	switch cfg.StatusBackend {
	case "redis":
		rs := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rs.Ping(ctx); err != nil {
			cancel()
			log.Fatalf("redis ping: %v", err)
		}
		cancel()
		statuses = rs
	default:
		statuses = video.NewMemoryStore()
	}

	reg := synth.NewRegistry()
	reg.Register("mock", func(ctx context.Context) (video.Synthesizer, error) {
		_ = ctx
		return synth.NewMock(cfg.MockLatencyScale), nil
	})
	reg.Register("blackbox", func(ctx context.Context) (video.Synthesizer, error) {
		_ = ctx
		return synth.NewBlackbox(cfg.BlackboxBaseURL, cfg.BlackboxAPIKey), nil
	})

	provider, err := reg.Get(context.Background(), cfg.Provider)
	if err != nil {
		log.Fatalf("synthesizer: %v", err)
	}

	svc := video.NewService(statuses, repo, provider, cfg.StageTimeout)

	// Async generation is optional; the sync endpoint works without a broker.
	var queue *rabbitmq.Publisher
	if q, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue); err != nil {
		log.Printf("rabbitmq unavailable, async generation disabled: %v", err)
	} else {
		queue = q
		defer queue.Close()
	}

	h := handlers.NewHandler(cfg, svc, repo, queue)
	r := httpapi.NewRouter(h)

	log.Printf("server listening addr=%s provider=%s status_backend=%s", cfg.HTTPAddr, cfg.Provider, cfg.StatusBackend)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
