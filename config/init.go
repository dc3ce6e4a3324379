package config

import (
	"context"
	"fmt"
	"log"

	"fupa/services/logger"
	"fupa/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// App holds the infrastructure shared by routes, services and jobs.
type App struct {
	Settings   *Settings
	Router     *gin.Engine
	Melody     *melody.Melody
	Cron       *cron.Cron
	DB         *gorm.DB
	Redis      *redis.Client // nil when REDIS_ADDR is unset
	Cloudinary *cloudinary.Cloudinary
	Logger     logger.Logger
}

func InitApp(ctx context.Context, settings *Settings) (*App, error) {
	if settings.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)

	app := &App{
		Settings: settings,
		Router:   router,
		Melody:   melody.New(),
		Cron:     cron.New(cron.WithLocation(settings.Location)),
		Logger:   logger.NewDefaultLogger(logger.ParseLevel(settings.LogLevel)),
	}

	if err := app.initComponents(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %v", err)
	}

	return app, nil
}

func (a *App) initComponents(ctx context.Context) error {
	if _, err := utils.InitFileLoggers(a.Settings.LogDir); err != nil {
		log.Printf("Warning: file loggers disabled: %v", err)
	}

	db, err := ConnectDB(a.Settings.Env, a.Settings.Location.String())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}
	a.DB = db

	cld, err := ConnectCloudinary(a.Settings.CloudinaryURL)
	if err != nil {
		return err
	}
	a.Cloudinary = cld

	if a.Settings.RedisAddr != "" {
		a.Redis, err = ConnectRedis(ctx, a.Settings.RedisAddr)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %v", err)
		}
	} else {
		log.Println("REDIS_ADDR not set, caches stay in memory")
	}

	log.Println("All components initialized successfully")
	return nil
}
