package routes

import (
	"fmt"
	"net/http"
	"time"

	"fupa/config"
	"fupa/services"
	"fupa/services/notification"
	"fupa/services/shellcache"
)

// Services is everything the HTTP layer and jobs are built from.
type Services struct {
	Attendance    *services.AttendanceService
	Auth          *services.AuthService
	Users         *services.UserService
	Overrides     *services.OverrideService
	Announcements *services.AnnouncementService
	Notifications *services.NotificationService
	Media         services.MediaStore
	Shell         *shellcache.Controller
	ShellManifest shellcache.Manifest
}

func NewServices(app *config.App) (*Services, error) {
	s := app.Settings
	hub := notification.NewMelodyService(app.Melody)
	media := services.NewCloudinaryMedia(app.Cloudinary, s.MediaFolder)

	schedule := services.Schedule{
		ClockInDeadline: s.ClockIn,
		ClockOutStart:   s.ClockOut,
		OffDays:         s.OffDays,
	}

	shellFetcher, err := newShellFetcher(s.Shell)
	if err != nil {
		return nil, err
	}
	var shellStorage shellcache.Storage = shellcache.NewMemoryStorage()
	if app.Redis != nil {
		shellStorage = shellcache.NewRedisStorage(app.Redis, "shell")
	}

	return &Services{
		Attendance: services.NewAttendanceService(services.AttendanceServiceOptions{
			Store:  services.NewGormAttendanceStore(app.DB),
			Media:  media,
			Rules:  services.NewRules(s.Location, schedule),
			Logger: app.Logger,
		}),
		Auth: services.NewAuthService(services.AuthServiceOptions{
			DB:             app.DB,
			Secret:         s.AccessSecret,
			TokenMinutes:   s.TokenMinutes,
			GoogleClientID: s.GoogleClientID,
			Logger:         app.Logger,
		}),
		Users:     services.NewUserService(services.UserServiceOptions{DB: app.DB, Logger: app.Logger}),
		Overrides: services.NewOverrideService(app.DB, app.Redis, app.Logger),
		Announcements: services.NewAnnouncementService(services.AnnouncementServiceOptions{
			DB:       app.DB,
			Notifier: hub,
			Location: s.Location,
			Logger:   app.Logger,
		}),
		Notifications: services.NewNotificationService(app.DB, hub, app.Logger),
		Media:         media,
		Shell:         shellcache.NewController(shellStorage, shellFetcher, app.Logger),
		ShellManifest: s.Shell.Manifest(),
	}, nil
}

// newShellFetcher proxies to SHELL_ORIGIN when set, otherwise serves SHELL_DIR.
func newShellFetcher(s config.ShellSettings) (shellcache.Fetcher, error) {
	if s.Origin != "" {
		f, err := shellcache.NewOriginFetcher(s.Origin, &http.Client{Timeout: 15 * time.Second})
		if err != nil {
			return nil, fmt.Errorf("invalid SHELL_ORIGIN: %w", err)
		}
		return f, nil
	}
	return shellcache.HandlerFetcher{Handler: shellcache.DirHandler{Root: s.Dir}}, nil
}
