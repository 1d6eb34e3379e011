package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	breath "github.com/rcarcasses/challenge-biosignal"
	"github.com/rcarcasses/challenge-biosignal/config"
	"github.com/rcarcasses/challenge-biosignal/store"
	"github.com/rcarcasses/challenge-biosignal/stream"
)

func main() {
	log.Println("Starting breathstream service...")

	cfg := config.Load()

	windower, err := stream.NewWindower(breath.Config{
		HeightPercentile: cfg.HeightPercentile,
		MinDistance:      cfg.MinDistance,
		MinIntervalS:     cfg.MinIntervalS,
		MaxIntervalS:     cfg.MaxIntervalS,
	}, cfg.WindowRecords)
	if err != nil {
		log.Fatalf("Failed to configure windower: %v", err)
	}

	var db *store.DB
	if cfg.StoreEnabled {
		db, err = store.Open(cfg.ClickHouseAddr, cfg.ClickHouseDB, cfg.ClickHouseUser, cfg.ClickHousePass)
		if err != nil {
			log.Fatalf("Failed to open ClickHouse: %v", err)
		}
		defer db.Close()
	}

	client, err := stream.Connect(stream.ClientConfig{
		Broker:   cfg.MQTTBroker,
		ClientID: cfg.MQTTClientID,
		Username: cfg.MQTTUsername,
		Password: cfg.MQTTPassword,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MQTT: %v", err)
	}
	defer client.Disconnect(250)

	sub := stream.NewSubscriber(client, cfg.MQTTTopicRR, 256)
	if err := sub.Subscribe(); err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	sessionID := uuid.New().String()
	log.Printf("Capture session %s started", sessionID)
	if db != nil {
		if err := db.SaveSession(context.Background(), sessionID, time.Now(), cfg.MQTTBroker, cfg.MQTTTopicRR); err != nil {
			log.Printf("Failed to record capture session: %v", err)
		}
	}

	flushEvery := time.Duration(cfg.FlushSeconds) * time.Second
	if flushEvery <= 0 {
		flushEvery = 15 * time.Second
	}
	ticker := time.NewTicker(flushEvery)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case rec := <-sub.Records:
			windower.Add(rec)
		case <-ticker.C:
			flush(windower, db, sessionID, cfg.MQTTTopicRR)
		case sig := <-sigChan:
			log.Printf("Received signal %v, shutting down...", sig)
			flush(windower, db, sessionID, cfg.MQTTTopicRR)
			return
		}
	}
}

func flush(w *stream.Windower, db *store.DB, sessionID, source string) {
	rates := w.Flush()
	if len(rates) == 0 {
		return
	}
	log.Printf("Emitting %d breathing-rate samples (window holds %d records)", len(rates), w.Len())
	if db == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.SaveRates(ctx, sessionID, source, rates); err != nil {
		log.Printf("Failed to store rate samples: %v", err)
	}
}
