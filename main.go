package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"

	_ "queuecare/docs"
	"queuecare/internal/auth"
	"queuecare/internal/config"
	"queuecare/internal/feed"
	"queuecare/internal/handlers"
	"queuecare/internal/models"
	"queuecare/internal/monitoring"
	"queuecare/internal/notify"
	"queuecare/internal/projection"
	"queuecare/internal/queue"
	"queuecare/internal/storage"
	"queuecare/internal/tasks"
)

// @Title						QueueCare: очередь пациентов по отделениям
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Ошибка загрузки конфигурации: ", err)
	}
	if cfg.JWTAccessSecret == "" {
		log.Fatal("Не задан JWT_ACCESS_SECRET")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal("Ошибка подключения к хранилищу: ", err)
	}

	var redisClient *redis.Client
	var seq storage.Sequencer = &storage.MemorySequencer{}
	if cfg.RedisURL != "" {
		redisClient, err = storage.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal("Ошибка подключения к Redis: ", err)
		}
		defer redisClient.Close()
		seq = storage.NewRedisSequencer(redisClient)
	} else {
		log.Println("REDIS_URL не задан: нумерация и лента работают в пределах одного процесса")
	}

	hub := feed.NewHub()
	hub.OnSubscribersChanged = monitoring.SetFeedSubscribers
	go hub.Run(ctx)

	publisher := &feed.Fanout{Primary: hub}
	if redisClient != nil {
		broker := feed.NewRedisBroker(redisClient, cfg.FeedChannel, hub)
		broker.OnRelayChanged = monitoring.SetFeedRelayUp
		go broker.Run(ctx)
		publisher.Primary = broker
	}
	if cfg.PubNubPublishKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey
		pnConfig.UUID = "queuecare-server"
		publisher.Mirrors = append(publisher.Mirrors, feed.NewPubNubMirror(pubnub.NewPubNub(pnConfig), cfg.FeedChannel))
	}

	engine := queue.NewEngine(store, seq, publisher, cfg.Departments, queue.Options{
		Timeout:  cfg.OperationTimeout,
		PageSize: cfg.ListPageSize,
	})

	var notices notify.Queue
	if len(cfg.KafkaBrokers) > 0 {
		notices = notify.NewKafkaQueue(cfg.KafkaBrokers, cfg.KafkaNotifyTopic, cfg.KafkaGroupID)
		log.Printf("Уведомления идут через Kafka (%s)", cfg.KafkaNotifyTopic)
	} else {
		notices = notify.NewMemoryQueue(cfg.NotifyBuffer)
	}
	defer notices.Close()

	worker := notify.NewWorker(notices, notify.NewSMSClient(cfg.SMSRelayURL, cfg.NotifyTimeout), cfg.NotifyTimeout)
	go worker.Run(ctx)

	staff := projection.NewStaff(projection.LocalSource{
		Engine: engine,
		Hub:    hub,
		Viewer: models.Viewer{ID: "queuecare-server", IsStaff: true},
	}, cfg.Departments, projection.Options{})
	staff.OnLoad(monitoring.RecordDepartmentLoads)
	staff.Start(ctx)
	defer staff.Close()

	scheduler, err := tasks.InitScheduler(seq, engine, cfg.SequenceResetCron, cfg.StatsCron)
	if err != nil {
		log.Fatal("Ошибка запуска планировщика: ", err)
	}
	defer scheduler.Stop()

	r := handlers.SetupRouter(handlers.Dependencies{
		Auth:          auth.New(cfg.JWTAccessSecret),
		Engine:        engine,
		Trigger:       notify.NewTrigger(engine, notices),
		Hub:           hub,
		Staff:         staff,
		Store:         store,
		Redis:         redisClient,
		EnableMetrics: cfg.EnableMetrics,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Printf("Сервер запущен на порту %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера...", err.Error())
		}
	}()

	<-ctx.Done()
	log.Println("Остановка сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Ошибка остановки сервера:", err)
	}
}

func openStore(cfg *config.Config) (storage.TicketStore, error) {
	switch cfg.StorageDriver {
	case "memory":
		log.Println("Талоны хранятся в памяти процесса")
		return storage.NewMemoryStore(), nil
	case "postgres":
		db, err := storage.ConnectDatabase(cfg.DSN())
		if err != nil {
			return nil, err
		}
		return storage.NewGormStore(db), nil
	}
	return nil, errors.New("неизвестный STORAGE_DRIVER: " + cfg.StorageDriver)
}
