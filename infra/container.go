package infra

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"vehicledebts/internal/debts"
	"vehicledebts/internal/quota"
	"vehicledebts/pkg/detran"
	"vehicledebts/pkg/logger"
)

type ContainerDI struct {
	Config          Config
	Logger          *logger.Logger
	Redis           *redis.Client
	DetranClient    *detran.Client
	DebtsMetrics    *debts.Metrics
	RepositoryDebts *debts.Repository
	ServiceDebts    *debts.Service
	HandlerDebts    *debts.Handler
	RepositoryQuota *quota.Repository
	ServiceQuota    quota.InterfaceService
}

func NewContainerDI(config Config) *ContainerDI {
	container := &ContainerDI{Config: config}
	container.buildPkg()
	container.connectRedis()
	container.buildRepository()
	container.buildService()
	container.buildHandler()
	return container
}

func (c *ContainerDI) buildPkg() {
	log, err := logger.New(c.Config.LogMode)
	if err != nil {
		panic("Não foi possível iniciar o logger: " + err.Error())
	}
	c.Logger = log.With("service", c.Config.ServerName, "environment", c.Config.Environment)
	c.DetranClient = detran.NewClient(c.Config.DetranSPURL, c.Config.DetranSPTimeout, c.Logger)
	c.DebtsMetrics = debts.NewMetrics()
}

func (c *ContainerDI) connectRedis() {
	if c.Config.RedisUrl == "" {
		c.Logger.Warn("REDIS_URL not set, request quota disabled")
		return
	}

	opts := &redis.Options{Addr: c.Config.RedisUrl}
	if strings.Contains(c.Config.RedisUrl, "://") {
		parsed, err := redis.ParseURL(c.Config.RedisUrl)
		if err != nil {
			panic("REDIS_URL inválida: " + err.Error())
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		panic("Não foi possível conectar ao Redis: " + err.Error())
	}
	c.Redis = client
}

func (c *ContainerDI) buildRepository() {
	c.RepositoryDebts = debts.NewDebtsRepository(c.DetranClient)
	if c.Redis != nil {
		c.RepositoryQuota = quota.NewQuotaRepository(c.Redis)
	}
}

func (c *ContainerDI) buildService() {
	c.ServiceDebts = debts.NewDebtsService(c.RepositoryDebts, c.DebtsMetrics, c.Logger)
	if c.RepositoryQuota != nil {
		c.ServiceQuota = quota.NewQuotaService(c.RepositoryQuota, c.Config.QuotaLimit, c.Config.QuotaWindow)
	}
}

func (c *ContainerDI) buildHandler() {
	c.HandlerDebts = debts.NewDebtsHandler(c.ServiceDebts, c.Logger)
}

// Close releases the connections opened by the container.
func (c *ContainerDI) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Error("failed to close redis", "error", err)
		}
	}
	c.Logger.Sync()
}
