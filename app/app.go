package main

import (
	"flag"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	C "retailpulse/config"
	H "retailpulse/handler"
	"retailpulse/metrics"
	"retailpulse/profilestore"
)

// ./app --env=development --api_http_port=8080 --profile_store=lru --redis_host=localhost --redis_port=6379 --allowed_origins=http://localhost:3000
func main() {

	env := flag.String("env", "development", "")
	port := flag.Int("api_http_port", 8080, "")

	redisHost := flag.String("redis_host", "localhost", "")
	redisPort := flag.Int("redis_port", 6379, "")

	profileStore := flag.String("profile_store", C.ProfileStoreLRU, "Profile store backend. Could be lru|redis.")
	profileCacheSize := flag.Int("profile_cache_size", 0, "Max profiles held by the lru store. 0 picks the default.")

	allowedOrigins := flag.String("allowed_origins", "", "Comma separated list of origins allowed on cors.")
	sentryDSN := flag.String("sentry_dsn", "", "Sentry DSN")

	projectID := flag.String("gcp_project_id", "", "Project id of the gcp project.")
	projectLocation := flag.String("gcp_project_location", "", "Location of the gcp project.")

	flag.Parse()

	config := &C.Configuration{
		AppName:          "app_server",
		Env:              *env,
		Port:             *port,
		RedisHost:        *redisHost,
		RedisPort:        *redisPort,
		ProfileStore:     *profileStore,
		ProfileCacheSize: *profileCacheSize,
		SentryDSN:        *sentryDSN,
		AllowedOrigins:   C.ParseAllowedOrigins(*allowedOrigins),
	}

	// Initialize configs and connections.
	err := C.InitConf(config)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize.")
		return
	}
	if config.ProfileStore == C.ProfileStoreRedis {
		C.InitRedisConnection(config.RedisHost, config.RedisPort)
	}
	if err := profilestore.Init(config); err != nil {
		log.WithError(err).Fatal("Failed to initialize profile store.")
		return
	}
	metrics.InitMetrics(config.Env, config.AppName, *projectID, *projectLocation)

	if !C.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	defer C.SafeFlushSentryHook()

	r := gin.New()
	// Root middlewares for cors and request ids are registered on InitRoutes.
	H.InitRoutes(r)
	r.Run(":" + strconv.Itoa(C.GetConfig().Port))
}
