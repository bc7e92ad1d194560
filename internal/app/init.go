package app

import (
	"context"
	"fmt"
	"net/http"

	server "github.com/admin/astro-insights/internal/adapters/primary/http"
	adminController "github.com/admin/astro-insights/internal/adapters/primary/http/controllers/admin"
	alerterController "github.com/admin/astro-insights/internal/adapters/primary/http/controllers/alerter"
	healthcheckController "github.com/admin/astro-insights/internal/adapters/primary/http/controllers/healthcheck"
	horoscopeController "github.com/admin/astro-insights/internal/adapters/primary/http/controllers/horoscope"
	usersController "github.com/admin/astro-insights/internal/adapters/primary/http/controllers/users"
	kafkaConsumerAdapter "github.com/admin/astro-insights/internal/adapters/primary/kafka"
	kafkaHandlers "github.com/admin/astro-insights/internal/adapters/primary/kafka/handlers"
	alerterAdapter "github.com/admin/astro-insights/internal/adapters/secondary/alerter"
	astroApiAdapter "github.com/admin/astro-insights/internal/adapters/secondary/astroApi"
	kafkaAdapter "github.com/admin/astro-insights/internal/adapters/secondary/kafka"
	"github.com/admin/astro-insights/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/astro-insights/internal/adapters/secondary/storage/redis"
	"github.com/admin/astro-insights/internal/ports/cache"
	"github.com/admin/astro-insights/internal/ports/kafka"
	"github.com/admin/astro-insights/internal/ports/service"
	userRepo "github.com/admin/astro-insights/internal/repository/user"
	alerterService "github.com/admin/astro-insights/internal/services/alerter"
	astroApiService "github.com/admin/astro-insights/internal/services/astroApi"
	jobScheduler "github.com/admin/astro-insights/internal/services/jobs"
	"github.com/admin/astro-insights/internal/services/skycache"
	horoscopeUsecase "github.com/admin/astro-insights/internal/usecases/horoscope"
	"github.com/admin/astro-insights/internal/usecases/themes"
	usersUsecase "github.com/admin/astro-insights/internal/usecases/users"
)

const consumerGroupPrefix = "astro-insights-"

type Dependencies struct {
	DB            *pg.DB
	Redis         *redisAdapter.Client // nil, если Redis выключен или недоступен
	HTTPServer    *http.Server
	KafkaProducer *kafkaAdapter.Producer
	KafkaConsumer *kafkaConsumerAdapter.Consumer
	JobScheduler  *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	db, err := a.initPostgres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	deps := &Dependencies{DB: db}
	deps.Redis = a.initRedis(ctx)

	location, err := a.Cfg.Cache.Location()
	if err != nil {
		return nil, err
	}

	alerter := a.initAlerter()
	provider := a.initAstroProvider(deps.Redis)
	skyCache := skycache.New(provider, *a.Cfg.Cache, a.Log, skycache.WithLocation(location))

	var publisher kafka.IInvalidationPublisher
	if a.Cfg.Kafka.Enabled {
		deps.KafkaProducer, err = kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
		if err != nil {
			a.Log.Warn("failed to create kafka producer, invalidations stay local", "error", err)
		} else {
			publisher = deps.KafkaProducer
		}

		deps.KafkaConsumer, err = a.initKafkaConsumer(skyCache)
		if err != nil {
			a.Log.Warn("failed to create kafka consumer, remote invalidations ignored", "error", err)
		}
	}

	users := userRepo.New(db, a.Log)
	horoscope := horoscopeUsecase.New(
		users,
		skyCache,
		themes.New(a.Log),
		publisher, // может быть nil
		a.InstanceID,
		location,
		a.Log,
	)

	deps.JobScheduler = a.initJobScheduler(alerter, skyCache, horoscope)
	deps.HTTPServer = a.initHTTP(deps, usersUsecase.New(users, provider, a.Log), horoscope, skyCache, alerter)

	return deps, nil
}

// initPostgres подключается к БД и применяет миграции
func (a *App) initPostgres(ctx context.Context) (*pg.DB, error) {
	conn, err := a.Cfg.Postgres.NewConnection(ctx)
	if err != nil {
		return nil, err
	}

	if err := pg.RunMigrations(ctx, conn, a.Log); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return pg.NewDB(conn), nil
}

// initRedis опциональный: без него квота провайдера не считается
func (a *App) initRedis(ctx context.Context) *redisAdapter.Client {
	if !a.Cfg.Redis.Enabled {
		return nil
	}

	rdb, err := a.Cfg.Redis.NewConnection(ctx)
	if err != nil {
		a.Log.Warn("failed to init redis, continuing without quota counter", "error", err)
		return nil
	}

	a.Log.Info("redis connected", "addr", a.Cfg.Redis.Addr())
	return redisAdapter.NewClient(rdb)
}

func (a *App) initAstroProvider(redisClient *redisAdapter.Client) *astroApiService.Service {
	var quota cache.Counter
	if redisClient != nil {
		quota = redisClient
	} else if a.Cfg.AstroAPI.DailyQuota > 0 {
		a.Log.Warn("astro API daily quota is set but redis is unavailable, quota is not enforced",
			"daily_quota", a.Cfg.AstroAPI.DailyQuota)
	}

	client := astroApiAdapter.NewClient(a.Cfg.AstroAPI, a.Log)
	return astroApiService.New(client, quota, a.Cfg.AstroAPI.DailyQuota, a.Log)
}

// initAlerter без токена и чата алерты только пишутся в лог
func (a *App) initAlerter() service.IAlerterService {
	var sender alerterService.Sender
	if client := alerterAdapter.NewClient(a.Cfg.Alerter, a.Log); client != nil {
		sender = client
	}
	return alerterService.New(sender, a.Name, a.Log)
}

// initKafkaConsumer каждая реплика читает все события, поэтому по умолчанию у неё своя группа
func (a *App) initKafkaConsumer(skyCache service.ISkyCache) (*kafkaConsumerAdapter.Consumer, error) {
	group := a.Cfg.Kafka.ConsumerGroup
	if group == "" {
		group = consumerGroupPrefix + a.InstanceID.String()
	}

	handler := kafkaHandlers.NewCacheInvalidationHandler(skyCache, a.InstanceID, a.Log)
	return kafkaConsumerAdapter.NewConsumer(a.Cfg.Kafka, group, handler, a.Log)
}

// initJobScheduler регистрирует очистку кэша и полночный сброс неба
func (a *App) initJobScheduler(
	alerter service.IAlerterService,
	skyCache *skycache.Service,
	horoscope *horoscopeUsecase.Service,
) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log, alerter)

	scheduler.Register(jobScheduler.NewCacheSweeper(skyCache, skyCache.SweepInterval(), a.Log))
	scheduler.Register(jobScheduler.NewDailySkyReset(horoscope, horoscope.Location, a.Log))

	return scheduler
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	deps *Dependencies,
	users *usersUsecase.Service,
	horoscope *horoscopeUsecase.Service,
	skyCache *skycache.Service,
	alerter service.IAlerterService,
) *http.Server {
	checks := []healthcheckController.Check{{Name: "postgres", Pinger: deps.DB}}
	if deps.Redis != nil {
		checks = append(checks, healthcheckController.Check{Name: "redis", Pinger: deps.Redis})
	}

	controllers := []server.Controller{
		healthcheckController.New(a.Name, a.Log, checks...),
		usersController.New(users, a.Log),
		horoscopeController.New(horoscope, a.Log),
		adminController.New(horoscope, skyCache, a.Cfg.Server.AdminToken, a.Log),
		alerterController.New(alerter, a.Log),
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}
