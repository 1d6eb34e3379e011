package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the environment-driven settings of the live capture
// service.
type Config struct {
	// MQTT
	MQTTBroker   string
	MQTTClientID string
	MQTTUsername string
	MQTTPassword string
	MQTTTopicRR  string

	// ClickHouse
	StoreEnabled   bool
	ClickHouseAddr string
	ClickHouseDB   string
	ClickHouseUser string
	ClickHousePass string

	// Windowing
	WindowRecords int
	FlushSeconds  int

	// Detection parameters
	HeightPercentile float64
	MinDistance      int
	MinIntervalS     float64
	MaxIntervalS     float64
}

// Load reads the configuration from the environment, after loading a .env
// file when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		MQTTBroker:   getEnv("MQTT_BROKER", "tcp://localhost:1883"),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", "breathstream"),
		MQTTUsername: getEnv("MQTT_USERNAME", ""),
		MQTTPassword: getEnv("MQTT_PASSWORD", ""),
		MQTTTopicRR:  getEnv("MQTT_TOPIC_RR", "hrm/+/rr"),

		StoreEnabled:   getEnvBool("STORE_ENABLED", true),
		ClickHouseAddr: getEnv("CLICKHOUSE_ADDR", "localhost:9000"),
		ClickHouseDB:   getEnv("CLICKHOUSE_DB", "biosignal"),
		ClickHouseUser: getEnv("CLICKHOUSE_USER", "default"),
		ClickHousePass: getEnv("CLICKHOUSE_PASS", ""),

		WindowRecords: getEnvInt("WINDOW_RECORDS", 180),
		FlushSeconds:  getEnvInt("FLUSH_SECONDS", 15),

		HeightPercentile: getEnvFloat("HEIGHT_PERCENTILE", 60),
		MinDistance:      getEnvInt("MIN_DISTANCE", 5),
		MinIntervalS:     getEnvFloat("MIN_INTERVAL_S", 2.0),
		MaxIntervalS:     getEnvFloat("MAX_INTERVAL_S", 10.0),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as int, using default: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: failed to parse %s as float, using default: %v", key, err)
		return defaultValue
	}
	return floatValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as bool, using default: %v", key, err)
		return defaultValue
	}
	return boolValue
}
