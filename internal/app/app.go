package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/XxArDy/hotels/internal/config"
	"github.com/XxArDy/hotels/internal/hotel"
	"github.com/XxArDy/hotels/internal/idgen/simple"
	"github.com/XxArDy/hotels/internal/logger"
	"github.com/XxArDy/hotels/internal/migration"
	"github.com/XxArDy/hotels/internal/mq"
	"github.com/XxArDy/hotels/internal/notify"
	"github.com/XxArDy/hotels/internal/storage/memory"
	"github.com/XxArDy/hotels/internal/storage/postgres"
	"github.com/XxArDy/hotels/internal/transport/web"
)

const shutdownTimeout = time.Second * 4

//nolint:funlen // linear wiring
func Run(l *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	conf := config.Load()

	var sinks []hotel.EventSink

	if conf.AMQPURL != "" {
		publisher, err := mq.NewPublisher(mq.Config{L: l, URL: conf.AMQPURL, Queue: conf.BookingQueue})
		if err != nil {
			return fmt.Errorf("init event publisher: %w", err)
		}
		defer publisher.Close()

		sinks = append(sinks, publisher)

		l.LogInfo("Booking events will be published to queue %v", conf.BookingQueue)
	}

	if conf.SMTPHost != "" {
		mailer := notify.NewMailer(notify.Config{
			L:    l,
			Host: conf.SMTPHost,
			Port: conf.SMTPPort,
			From: conf.MailFrom,
		})
		mailer.Listen(ctx)

		sinks = append(sinks, mailer)

		l.LogInfo("Booking confirmations will be mailed via %v:%v", conf.SMTPHost, conf.SMTPPort)
	}

	var hotelManager *hotel.Manager

	if conf.DatabaseDSN != "" {
		storage, err := postgres.New(ctx, postgres.Config{L: l, DSN: conf.DatabaseDSN})
		if err != nil {
			return fmt.Errorf("init postgres storage: %w", err)
		}

		defer func() {
			if err := storage.Close(); err != nil {
				l.LogErrorf("Failed to close postgres storage: %v", err.Error())
			}
		}()

		idGen := postgres.NewIDGen(storage)

		if err := migration.Up(ctx, l, storage, idGen); err != nil {
			return fmt.Errorf("up seed migration: %w", err)
		}

		hotelManager = hotel.New(l, storage, idGen, sinks...)

		l.LogInfo("Using postgres storage")
	} else {
		storage := memory.New(memory.Config{L: l})
		idGen := simple.New()

		if err := migration.Up(ctx, l, storage, idGen); err != nil {
			return fmt.Errorf("up seed migration: %w", err)
		}

		hotelManager = hotel.New(l, storage, idGen, sinks...)

		l.LogInfo("Using in-memory storage")
	}

	l.LogInfo("Seed migration has been applied")

	webConf := web.Conf{
		L:                 l,
		ServerLogger:      log.Default(),
		Host:              conf.Host,
		Port:              conf.Port,
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		LivenessEndpoint:  conf.LivenessEndpoint,
	}

	srv, err := web.New(ctx, webConf, hotelManager)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	l.LogInfo("Application is running on %v:%v...", webConf.Host, webConf.Port)

	if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		l.LogErrorf("Failed to run http server: %v", err.Error())

		cancel()
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}
