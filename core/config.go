package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const launchDateLayout = "2006-01-02T15:04:05"

type (
	Config struct {
		Env      string
		Debug    bool
		TestMode bool
		AppName  string
		Build    string

		API           APIConfig
		Session       SessionConfig
		Notifications NotificationConfig
		DevAPI        DevAPIConfig

		// RedirectDelay is how long a successful submission waits before navigating away.
		RedirectDelay time.Duration
		LaunchDate    time.Time

		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string
	}

	APIConfig struct {
		BaseURL string
		Timeout time.Duration
	}

	SessionConfig struct {
		File  string // userInfo JSON written at login
		Token string // overrides File when set
	}

	NotificationConfig struct {
		Success time.Duration
		Error   time.Duration
	}

	DevAPIConfig struct {
		Address            string
		SecretKey          string
		JWTExpirationDelta time.Duration
		ShutdownTimeout    time.Duration
	}
)

// NewConfig loads the configuration from defaults, `config/.env.<env>` and the environment, in that order.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "EduConnect")
	conf.SetDefault("build", "develop")
	conf.SetDefault("apiBaseURL", "http://localhost:5000")
	conf.SetDefault("apiTimeout", 30*time.Second)
	conf.SetDefault("sessionFile", filepath.Join(userConfigDir(), "educonnect", "userInfo.json"))
	conf.SetDefault("token", "")
	conf.SetDefault("redirectDelay", 1500*time.Millisecond)
	conf.SetDefault("notificationSuccessDuration", 3500*time.Millisecond)
	conf.SetDefault("notificationErrorDuration", 5*time.Second)
	conf.SetDefault("launchDate", "2026-01-15T00:00:00")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("devapiAddress", ":5000")
	conf.SetDefault("devapiSecretKey", "v2x!q8-dev-only-0n%k3^s1gn1ng(k3y)")
	conf.SetDefault("devapiJwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("devapiShutdownTimeout", 5*time.Second)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	launch, err := time.ParseInLocation(launchDateLayout, conf.GetString("launchDate"), time.Local)
	if err != nil {
		log.Fatalf("config.launchDate(%s): %v", conf.GetString("launchDate"), err)
	}

	return &Config{
		Env:      env,
		Debug:    conf.GetBool("debug"),
		TestMode: conf.GetBool("testMode"),
		AppName:  conf.GetString("appName"),
		Build:    conf.GetString("build"),
		API: APIConfig{
			BaseURL: strings.TrimRight(conf.GetString("apiBaseURL"), "/"),
			Timeout: conf.GetDuration("apiTimeout"),
		},
		Session: SessionConfig{
			File:  conf.GetString("sessionFile"),
			Token: conf.GetString("token"),
		},
		Notifications: NotificationConfig{
			Success: conf.GetDuration("notificationSuccessDuration"),
			Error:   conf.GetDuration("notificationErrorDuration"),
		},
		DevAPI: DevAPIConfig{
			Address:            conf.GetString("devapiAddress"),
			SecretKey:          conf.GetString("devapiSecretKey"),
			JWTExpirationDelta: conf.GetDuration("devapiJwtExpirationDelta"),
			ShutdownTimeout:    conf.GetDuration("devapiShutdownTimeout"),
		},
		RedirectDelay:    conf.GetDuration("redirectDelay"),
		LaunchDate:       launch,
		DefaultFromEmail: mail.Address{Name: conf.GetString("appName"), Address: conf.GetString("defaultFromEmail")},
		SendgridApiKey:   conf.GetString("sendgridApiKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
	}
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return os.TempDir()
}
