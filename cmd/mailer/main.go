package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"blogicum/pkg/config"
	"blogicum/pkg/logger"
	"blogicum/pkg/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		panic(err)
	}
	defer queueClient.Close()

	if err := queueClient.ConsumeMailTasks(func(task queue.MailTask) error {
		log.Info("Mail from=%s to=%s subject=%q (%d bytes)",
			task.From, strings.Join(task.To, ","), task.Subject, len(task.Body))
		return nil
	}); err != nil {
		log.Error("Failed to consume mail tasks: %v", err)
		panic(err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Mailer exited")
}
