package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sonuarjun3120/krishpafoods/internal/database"
	"github.com/sonuarjun3120/krishpafoods/internal/logs"
	"github.com/sonuarjun3120/krishpafoods/internal/notifications"
	"github.com/sonuarjun3120/krishpafoods/internal/rabbitmq"
	"github.com/sonuarjun3120/krishpafoods/internal/repository"
)

const defaultPollInterval = 30 * time.Second

func main() {
	logger := logs.NewSlogLogger()
	err := godotenv.Load()
	if err == nil {
		logger.Info("loaded environment variables from .env file")
	}

	pgDb, err := database.InitializePostgresDB()
	if err != nil {
		logger.Error("error connecting to database", "error", err)
		os.Exit(1)
	}
	defer pgDb.Close()

	smtpSender, err := initializeSMTPSender(logger)
	if err != nil {
		logger.Error("failed to initialize SMTP sender", "error", err)
		os.Exit(1)
	}

	rabbitmqConn, err := rabbitmq.NewConnection(logger, os.Getenv("RABBITMQ_URL"))
	if err != nil {
		logger.Error("failed to initialize RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer rabbitmqConn.Close()

	queries := repository.New(pgDb)
	channels := map[string]notifications.Channel{
		"email":    notifications.NewEmailChannel(smtpSender),
		"sms":      notifications.NewLogChannel("sms", logger),
		"whatsapp": notifications.NewLogChannel("whatsapp", logger),
	}
	dispatcher := notifications.NewDispatcher(queries, channels, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		logger.Info("shutdown signal received, cancelling context...")
		cancel()
	}()

	consumer := notifications.NewCheckoutEventsConsumer(logger, dispatcher, rabbitmqConn)
	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("checkout events consumer stopped", "error", err)
		}
	}()

	logger.Info("starting notification dispatcher...")
	dispatcher.Start(ctx, pollInterval())

	logger.Info("service shut down gracefully")
}

func pollInterval() time.Duration {
	raw := os.Getenv("NOTIFICATION_POLL_INTERVAL_SECONDS")
	if raw == "" {
		return defaultPollInterval
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 1 {
		return defaultPollInterval
	}
	return time.Duration(seconds) * time.Second
}

func initializeSMTPSender(logger logs.Logger) (*notifications.SMTPSender, error) {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM_EMAIL")

	if host == "" || portStr == "" || from == "" {
		logger.Error(
			"SMTP configuration is not set properly",
			"host", host,
			"port", portStr,
			"from", from,
		)
		return nil, fmt.Errorf("SMTP configuration is not set properly, check SMTP_HOST, SMTP_PORT, and SMTP_FROM_EMAIL")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	return notifications.NewSMTPSender(host, port, username, password, from), nil
}
