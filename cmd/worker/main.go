package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"scouting-agent-be/internal/config"
	"scouting-agent-be/internal/pkg/logger"
	"scouting-agent-be/pkg/events"
	pkgNats "scouting-agent-be/pkg/nats"
)

// Audit worker: listens for rendered scouting reports on the event bus and
// writes them to the system log, so delivered documents are traceable even
// when the REST instance that produced them is gone.
func main() {
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	sub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe("events."+events.EventTypeReportRendered, "report-rendered-audit",
		func(ctx context.Context, ev events.Event) error {
			sysLogger.Info("WORKER", "scouting report rendered", ev.Payload())
			return nil
		})
	if err != nil {
		log.Fatalf("Error: Failed to subscribe: %v", err)
	}

	log.Println("✅ Report audit worker is running. Press Ctrl+C to exit.")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("Shutting down worker...")
}
