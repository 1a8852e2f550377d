package main

import (
	"context"
	"fmt"

	"github.com/mirstone/ordermart/internal/adapter/client/catalog"
	"github.com/mirstone/ordermart/internal/adapter/config"
	"github.com/mirstone/ordermart/internal/adapter/handler/http"
	"github.com/mirstone/ordermart/internal/adapter/identity"
	"github.com/mirstone/ordermart/internal/adapter/logger"
	"github.com/mirstone/ordermart/internal/adapter/publisher"
	"github.com/mirstone/ordermart/internal/adapter/storage"
	"github.com/mirstone/ordermart/internal/adapter/storage/repository"
	"github.com/mirstone/ordermart/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewOrderRepository(db, identity.NewUUIDGenerator())
	if err != nil {
		log.Error("order repo creating error", zap.Error(err))
		return
	}

	events, err := publisher.NewKafkaPublisher(conf.Kafka, log.Named("Publisher"))
	if err != nil {
		log.Error("event publisher creating error", zap.Error(err))
		return
	}
	defer func() {
		if err := events.Close(); err != nil {
			log.Error("event publisher close error", zap.Error(err))
		}
	}()

	uow, err := service.NewCoordinator(repo, events, log.Named("UnitOfWork"))
	if err != nil {
		log.Error("unit of work creating error", zap.Error(err))
		return
	}

	products, err := catalog.NewClient(conf.Catalog, log.Named("Catalog"))
	if err != nil {
		log.Error("catalog client creating error", zap.Error(err))
		return
	}

	svc, err := service.NewService(repo, uow, products, log.Named("Service"))
	if err != nil {
		log.Error("order service creating error", zap.Error(err))
		return
	}

	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, orderHandler, http.NewServerMetrics())
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
