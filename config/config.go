package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/evalphobia/logrus_sentry"
	"github.com/gomodule/redigo/redis"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

var initiated bool = false

const (
	DEVELOPMENT = "development"
	STAGING     = "staging"
	PRODUCTION  = "production"
)

// Profile store backends.
const (
	ProfileStoreLRU   = "lru"
	ProfileStoreRedis = "redis"
)

type Configuration struct {
	AppName          string   `json:"app_name"`
	Env              string   `json:"env"`
	Port             int      `json:"port"`
	RedisHost        string   `json:"redis_host"`
	RedisPort        int      `json:"redis_port"`
	ProfileStore     string   `json:"profile_store"`
	ProfileCacheSize int      `json:"profile_cache_size"`
	SentryDSN        string   `json:"sentry_dsn"`
	AllowedOrigins   []string `json:"allowed_origins"`
	BucketName       string   `json:"bucket_name"`
}

type Services struct {
	CacheRedisPool *redis.Pool
}

// Deploy environments set these instead of flags. Flags still win the
// default, env wins when present.
type envOverrides struct {
	RedisHost string `envconfig:"redis_host"`
	RedisPort int    `envconfig:"redis_port"`
	SentryDSN string `envconfig:"sentry_dsn"`
}

var configuration *Configuration = nil
var services *Services = nil
var sentryHook *logrus_sentry.SentryHook = nil

func initLogging() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	if IsDevelopment() {
		log.SetLevel(log.DebugLevel)
	}
}

func initSentryLogging() {
	if configuration.SentryDSN == "" {
		return
	}

	hook, err := logrus_sentry.NewSentryHook(configuration.SentryDSN, []log.Level{
		log.PanicLevel,
		log.FatalLevel,
		log.ErrorLevel,
	})
	if err != nil {
		log.WithError(err).Error("Failed to initialize sentry hook")
		return
	}

	hook.Timeout = 5 * time.Second
	hook.StacktraceConfiguration.Enable = true
	hook.SetEnvironment(configuration.Env)
	log.AddHook(hook)
	sentryHook = hook
	log.Info("Sentry logging initialized")
}

// SafeFlushSentryHook - Deferred by mains so buffered errors reach sentry
// before the process exits.
func SafeFlushSentryHook() {
	if sentryHook != nil {
		sentryHook.Flush()
	}
}

func applyEnvOverrides(config *Configuration) error {
	var overrides envOverrides
	if err := envconfig.Process("rp", &overrides); err != nil {
		return err
	}

	if overrides.RedisHost != "" {
		config.RedisHost = overrides.RedisHost
	}
	if overrides.RedisPort != 0 {
		config.RedisPort = overrides.RedisPort
	}
	if overrides.SentryDSN != "" {
		config.SentryDSN = overrides.SentryDSN
	}
	return nil
}

func InitConf(config *Configuration) error {
	if initiated {
		return fmt.Errorf("config already initialized")
	}

	if err := applyEnvOverrides(config); err != nil {
		return err
	}

	configuration = config
	services = &Services{}

	initLogging()
	initSentryLogging()

	initiated = true
	return nil
}

// InitRedisConnection - Builds the shared cache pool. Jobs and the app
// call this only when the redis backed store is selected.
func InitRedisConnection(host string, port int) {
	if services == nil {
		services = &Services{}
	}

	services.CacheRedisPool = NewCacheRedisPool(host, port)
	log.WithFields(log.Fields{"host": host, "port": port}).Info("Redis cache initialized")
}

func NewCacheRedisPool(host string, port int) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     50,
		MaxActive:   100,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", fmt.Sprintf("%s:%d", host, port))
		},
		TestOnBorrow: func(conn redis.Conn, lastUsed time.Time) error {
			if time.Since(lastUsed) < time.Minute {
				return nil
			}
			_, err := conn.Do("PING")
			return err
		},
	}
}

func GetCacheRedisConnection() redis.Conn {
	return services.CacheRedisPool.Get()
}

// ParseAllowedOrigins - Splits the comma separated origins flag.
func ParseAllowedOrigins(origins string) []string {
	parsed := make([]string, 0)
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		parsed = append(parsed, origin)
	}
	return parsed
}

func GetConfig() *Configuration {
	return configuration
}

func GetServices() *Services {
	return services
}

func IsDevelopment() bool {
	return (strings.Compare(configuration.Env, DEVELOPMENT) == 0)
}

func IsStaging() bool {
	return (strings.Compare(configuration.Env, STAGING) == 0)
}

func IsProduction() bool {
	return (strings.Compare(configuration.Env, PRODUCTION) == 0)
}
