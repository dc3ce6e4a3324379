package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
)

const (
	DefaultTimezone        = "Asia/Jakarta"
	DefaultClockInDeadline = "08:00"
	DefaultClockOutStart   = "16:00"
)

// Settings is everything read from the environment at startup.
type Settings struct {
	Port           string
	Env            string
	LogLevel       string
	LogDir         string
	Location       *time.Location
	ClockIn        time.Duration
	ClockOut       time.Duration
	OffDays        []time.Weekday
	AccessSecret   []byte
	TokenMinutes   int
	GoogleClientID string
	CloudinaryURL  string
	RedisAddr      string
	MediaFolder    string
	Shell          ShellSettings
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env not loaded, using process environment: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvDefault returns the variable or def when it is unset or blank.
func GetEnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// LoadSettings reads Settings from the environment, applying defaults.
func LoadSettings() (*Settings, error) {
	loc, err := time.LoadLocation(GetEnvDefault("APP_TIMEZONE", DefaultTimezone))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	clockIn, err := ParseClock(GetEnvDefault("CLOCK_IN_DEADLINE", DefaultClockInDeadline))
	if err != nil {
		return nil, fmt.Errorf("invalid CLOCK_IN_DEADLINE: %w", err)
	}
	clockOut, err := ParseClock(GetEnvDefault("CLOCK_OUT_START", DefaultClockOutStart))
	if err != nil {
		return nil, fmt.Errorf("invalid CLOCK_OUT_START: %w", err)
	}
	offDays, err := ParseWeekdays(GetEnvDefault("OFF_DAYS", "sunday"))
	if err != nil {
		return nil, fmt.Errorf("invalid OFF_DAYS: %w", err)
	}

	secret := GetEnv("SECRET_KEY_ACCESS_TOKEN")
	if secret == "" {
		return nil, fmt.Errorf("SECRET_KEY_ACCESS_TOKEN is required")
	}

	return &Settings{
		Port:           GetEnvDefault("PORT", "8083"),
		Env:            GetEnvDefault("ENV", "dev"),
		LogLevel:       GetEnvDefault("LOG_LEVEL", "info"),
		LogDir:         GetEnvDefault("LOG_DIR", "logs"),
		Location:       loc,
		ClockIn:        clockIn,
		ClockOut:       clockOut,
		OffDays:        offDays,
		AccessSecret:   []byte(secret),
		TokenMinutes:   60 * 24 * 3,
		GoogleClientID: GetEnv("GOOGLE_CLIENT_ID"),
		CloudinaryURL:  GetEnv("CLOUDINARY_URL"),
		RedisAddr:      GetEnv("REDIS_ADDR"),
		MediaFolder:    GetEnvDefault("CLOUDINARY_FOLDER", "fupa-snack/attendance"),
		Shell:          LoadShellSettings(),
	}, nil
}

// ParseClock turns "HH:mm" into the offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday,
}

// ParseWeekdays parses a comma separated list of English weekday names.
// "none" yields an empty list.
func ParseWeekdays(s string) ([]time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return nil, nil
	}
	var out []time.Weekday
	for _, part := range strings.Split(s, ",") {
		d, ok := weekdays[strings.TrimSpace(part)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		out = append(out, d)
	}
	return out, nil
}

func ConnectCloudinary(url string) (*cloudinary.Cloudinary, error) {
	if url == "" {
		return nil, fmt.Errorf("CLOUDINARY_URL is not set")
	}
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return cld, nil
}
