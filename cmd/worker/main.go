package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vibelabs/pov-video/internal/config"
	"github.com/vibelabs/pov-video/internal/db"
	"github.com/vibelabs/pov-video/internal/store/redisstore"
	"github.com/vibelabs/pov-video/internal/synth"
	"github.com/vibelabs/pov-video/internal/video"
)

type jobMsg struct {
	VideoID string `json:"video_id"`
}

func workerConcurrency() int {
	v := os.Getenv("WORKER_CONCURRENCY")
	if v == "" {
		return 2
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN)
	repo := video.NewRepo(gdb)

	// The worker needs a store the API process can also see, so memory only
	// makes sense for single-process experiments.
	var statuses video.StatusStore
	switch cfg.StatusBackend {
	case "redis":
		rs := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rs.Ping(pctx); err != nil {
			cancel()
			log.Fatalf("redis ping: %v", err)
		}
		cancel()
		statuses = rs
	default:
		log.Printf("status backend %q is process-local; progress will not be visible to the API", cfg.StatusBackend)
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

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("rabbit dial: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbit channel: %v", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(cfg.RabbitQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": cfg.RabbitQueue + ".dlq",
	})
	if err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	concurrency := workerConcurrency()

	if err := ch.Qos(concurrency, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("worker started, queue=%s concurrency=%d", cfg.RabbitQueue, concurrency)

	// worker pool
	jobs := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				var m jobMsg
				if err := json.Unmarshal(d.Body, &m); err != nil || m.VideoID == "" {
					log.Printf("worker=%d bad message: %v", workerID, err)
					_ = d.Nack(false, false)
					continue
				}

				start := time.Now()
				if err := handleJob(ctx, svc, repo, m.VideoID); err != nil {
					log.Printf("worker=%d job %s failed cost=%s err=%v", workerID, m.VideoID, time.Since(start), err)
					_ = d.Nack(false, false)
					continue
				}

				if err := d.Ack(false); err != nil {
					log.Printf("worker=%d ack failed job=%s err=%v", workerID, m.VideoID, err)
				}
			}
		}(i)
	}

	// dispatcher
	for {
		select {
		case <-ctx.Done():
			log.Printf("worker shutting down")
			close(jobs)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				log.Printf("delivery channel closed")
				time.Sleep(1 * time.Second)
				continue
			}
			jobs <- d
		}
	}
}

// handleJob drives one queued generation to a terminal state. A pipeline
// failure lands on the job row and the message is acked, not requeued; a
// failed status record is terminal and re-running would be a no-op.
func handleJob(ctx context.Context, svc *video.Service, repo *video.Repo, videoID string) error {
	start := time.Now()

	_ = repo.MarkJobRunning(ctx, videoID)

	j, err := repo.GetJobByID(ctx, videoID)
	if err != nil {
		return err
	}

	resp, err := svc.Process(ctx, videoID, &video.GenerationRequest{
		Prompt:    j.Prompt,
		Duration:  j.Duration,
		SessionID: j.SessionID,
	})
	if err != nil {
		_ = repo.MarkJobFailed(ctx, videoID, err.Error())
		return err
	}

	if !resp.Success {
		_ = repo.MarkJobFailed(ctx, videoID, resp.Error)
		log.Printf("job=%s failed cost=%s err=%s", videoID, time.Since(start), resp.Error)
		return nil
	}

	if err := repo.MarkJobSucceeded(ctx, videoID); err != nil {
		return err
	}

	if cost := time.Since(start); cost > 2*time.Second {
		log.Printf("job=%s done cost=%s", videoID, cost)
	}
	return nil
}
