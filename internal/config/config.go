package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv string
	Port   string

	DB       DBConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Gemini   GeminiConfig
	School   SchoolConfig
	Schedule ScheduleConfig
	Flow     FlowConfig
	Seed     SeedConfig
	Report   ReportConfig
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker              string
	OutboxRetention     time.Duration // umur event terkirim sebelum dihapus worker
	OutboxPurgeSchedule string
}

type JWTConfig struct {
	Secret string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// SchoolConfig adalah titik acuan geofence sekolah.
type SchoolConfig struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Timezone  string
}

// ScheduleConfig adalah jendela ketepatan waktu dalam jam desimal (8.5 = 08:30).
type ScheduleConfig struct {
	CheckInStart  float64
	CheckInEnd    float64
	CheckOutStart float64
	CheckOutEnd   float64
}

type FlowConfig struct {
	PositionTimeout          time.Duration
	GeocodeTimeout           time.Duration
	SubmittedDisplayInterval time.Duration
	AttemptTTL               time.Duration
}

type SeedConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
	DemoTeacher   bool
}

type ReportConfig struct {
	CacheTTL     time.Duration
	WarmSchedule string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load membaca .env (jika ada), lalu environment variable dengan default dari viper.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)
	v.AutomaticEnv()

	return Config{
		AppEnv: v.GetString("APP_ENV"),
		Port:   v.GetString("PORT"),
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			Port:     v.GetString("DB_PORT"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{Addr: v.GetString("REDIS_ADDR")},
		Kafka: KafkaConfig{
			Broker:              v.GetString("KAFKA_BROKER"),
			OutboxRetention:     v.GetDuration("OUTBOX_RETENTION"),
			OutboxPurgeSchedule: v.GetString("OUTBOX_PURGE_SCHEDULE"),
		},
		JWT:   JWTConfig{Secret: v.GetString("JWT_SECRET")},
		Gemini: GeminiConfig{
			APIKey: v.GetString("GEMINI_API_KEY"),
			Model:  v.GetString("GEMINI_MODEL"),
		},
		School: SchoolConfig{
			Latitude:  v.GetFloat64("SCHOOL_LATITUDE"),
			Longitude: v.GetFloat64("SCHOOL_LONGITUDE"),
			RadiusKm:  v.GetFloat64("SCHOOL_RADIUS_KM"),
			Timezone:  v.GetString("SCHOOL_TIMEZONE"),
		},
		Schedule: ScheduleConfig{
			CheckInStart:  v.GetFloat64("CHECKIN_START"),
			CheckInEnd:    v.GetFloat64("CHECKIN_END"),
			CheckOutStart: v.GetFloat64("CHECKOUT_START"),
			CheckOutEnd:   v.GetFloat64("CHECKOUT_END"),
		},
		Flow: FlowConfig{
			PositionTimeout:          v.GetDuration("POSITION_TIMEOUT"),
			GeocodeTimeout:           v.GetDuration("GEOCODE_TIMEOUT"),
			SubmittedDisplayInterval: v.GetDuration("SUBMITTED_DISPLAY_INTERVAL"),
			AttemptTTL:               v.GetDuration("ATTEMPT_TTL"),
		},
		Seed: SeedConfig{
			AdminName:     v.GetString("ADMIN_NAME"),
			AdminEmail:    v.GetString("ADMIN_EMAIL"),
			AdminPassword: v.GetString("ADMIN_PASSWORD"),
			DemoTeacher:   v.GetBool("SEED_DEMO_TEACHER"),
		},
		Report: ReportConfig{
			CacheTTL:     v.GetDuration("REPORT_CACHE_TTL"),
			WarmSchedule: v.GetString("REPORT_WARM_SCHEDULE"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("KAFKA_BROKER", "")
	v.SetDefault("OUTBOX_RETENTION", 7*24*time.Hour)
	v.SetDefault("OUTBOX_PURGE_SCHEDULE", "0 2 * * *")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")

	// SMKN 1 Indra Makmu
	v.SetDefault("SCHOOL_LATITUDE", 4.3315)
	v.SetDefault("SCHOOL_LONGITUDE", 97.4695)
	v.SetDefault("SCHOOL_RADIUS_KM", 0.5)
	v.SetDefault("SCHOOL_TIMEZONE", "Asia/Jakarta")

	v.SetDefault("CHECKIN_START", 7.0)
	v.SetDefault("CHECKIN_END", 8.5)
	v.SetDefault("CHECKOUT_START", 12.0)
	v.SetDefault("CHECKOUT_END", 14.5)

	v.SetDefault("POSITION_TIMEOUT", 10*time.Second)
	v.SetDefault("GEOCODE_TIMEOUT", 4*time.Second)
	v.SetDefault("SUBMITTED_DISPLAY_INTERVAL", 3*time.Second)
	v.SetDefault("ATTEMPT_TTL", 15*time.Minute)

	v.SetDefault("ADMIN_NAME", "admin")
	v.SetDefault("ADMIN_EMAIL", "admin@smkn1.id")
	v.SetDefault("ADMIN_PASSWORD", "smkn1indramakmu")
	v.SetDefault("SEED_DEMO_TEACHER", false)

	v.SetDefault("REPORT_CACHE_TTL", 10*time.Minute)
	v.SetDefault("REPORT_WARM_SCHEDULE", "@hourly")
}
