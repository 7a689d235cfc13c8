package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/kickoff-hub/service-users/pkg/config"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// TopicsConfig names the Kafka topics the service uses.
type TopicsConfig struct {
	UserRequests         string
	CompetitionsRequests string
	UserReplies          string
}

// ServiceConfig holds all configuration for the users service.
type ServiceConfig struct {
	Port             string
	AppEnv           string
	StoreDriver      string
	DBConfig         config.DatabaseConfig
	KafkaConfig      config.KafkaConfig
	Topics           TopicsConfig
	WorkerPoolSize   int
	CompetitionsMock bool
	// ReplyGroupID is this instance's consumer group on the reply topic.
	// It must differ between running instances and stay put across restarts.
	ReplyGroupID string
}

var hostname = os.Hostname

// Load reads configuration from environment variables and returns a ServiceConfig.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("users")
	if err != nil {
		return nil, err
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*ServiceConfig, error) {
	v.SetDefault("DB_NAME", "users")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("USERS_REQUEST_TOPIC", "users.requests")
	v.SetDefault("COMPETITIONS_REQUEST_TOPIC", "competitions.requests")
	v.SetDefault("USERS_REPLY_TOPIC", "users.replies")
	v.SetDefault("WORKER_POOL_SIZE", 64)
	v.SetDefault("COMPETITIONS_MOCK", false)

	driver := strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER")))
	if driver != StoreDriverPostgres && driver != StoreDriverMemory {
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", driver)
	}

	kafkaCfg := config.LoadKafkaConfig(v)

	workers := v.GetInt("WORKER_POOL_SIZE")
	if workers <= 0 {
		workers = 64
	}

	return &ServiceConfig{
		Port:        config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:      config.GetAppEnv(v),
		StoreDriver: driver,
		DBConfig:    config.LoadDatabaseConfig(v, "DB_NAME"),
		KafkaConfig: kafkaCfg,
		Topics: TopicsConfig{
			UserRequests:         v.GetString("USERS_REQUEST_TOPIC"),
			CompetitionsRequests: v.GetString("COMPETITIONS_REQUEST_TOPIC"),
			UserReplies:          v.GetString("USERS_REPLY_TOPIC"),
		},
		WorkerPoolSize:   workers,
		CompetitionsMock: v.GetBool("COMPETITIONS_MOCK"),
		ReplyGroupID:     replyGroupID(v, kafkaCfg.GroupPrefix),
	}, nil
}

// replyGroupID prefers KAFKA_REPLY_GROUP_ID, then the host name. A random
// suffix is the last resort and leaves a stale group behind on every restart.
func replyGroupID(v *viper.Viper, prefix string) string {
	if id := strings.TrimSpace(v.GetString("KAFKA_REPLY_GROUP_ID")); id != "" {
		return id
	}
	instance, err := hostname()
	if err != nil || strings.TrimSpace(instance) == "" {
		instance = uuid.NewString()
	}
	return prefix + "users-service-replies-" + strings.TrimSpace(instance)
}
