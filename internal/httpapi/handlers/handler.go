package handlers

import (
	"github.com/vibelabs/pov-video/internal/config"
	"github.com/vibelabs/pov-video/internal/store/rabbitmq"
	"github.com/vibelabs/pov-video/internal/video"
)

type Handler struct {
	Cfg   config.Config
	Svc   *video.Service
	Repo  *video.Repo
	Queue *rabbitmq.Publisher // nil when the broker is not configured
}

func NewHandler(cfg config.Config, svc *video.Service, repo *video.Repo, queue *rabbitmq.Publisher) *Handler {
	return &Handler{Cfg: cfg, Svc: svc, Repo: repo, Queue: queue}
}
