package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port int

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string

	OpenAIKey   string
	OpenAIModel string

	// Scheduling carries the fallback preferences used when a user
	// has no stored preferences row.
	Scheduling SchedulingDefaults
}

type SchedulingDefaults struct {
	WorkingHoursStart string `yaml:"working_hours_start"`
	WorkingHoursEnd   string `yaml:"working_hours_end"`
	EnergyPreference  string `yaml:"energy_preference"`
	Timezone          string `yaml:"timezone"`
	WorkingHours      int    `yaml:"working_hours"`
	MaxSuggestions    int    `yaml:"max_suggestions"`
}

func Load() *Config {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080 // fallback
	}

	dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		dbPort = 5432
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}

	cfg := &Config{
		Port: port,

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     dbPort,
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret: secret,

		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: model,

		Scheduling: DefaultScheduling(),
	}

	// Optional yaml override for the scheduling defaults.
	if path := os.Getenv("SCHEDULER_DEFAULTS"); path != "" {
		if err := loadSchedulingFile(path, &cfg.Scheduling); err != nil {
			fmt.Fprintf(os.Stderr, "config: ignoring %s: %v\n", path, err)
		}
	}

	return cfg
}

func DefaultScheduling() SchedulingDefaults {
	return SchedulingDefaults{
		WorkingHoursStart: "09:00:00",
		WorkingHoursEnd:   "17:00:00",
		EnergyPreference:  "balanced",
		Timezone:          "UTC",
		WorkingHours:      8,
		MaxSuggestions:    3,
	}
}

func loadSchedulingFile(path string, dst *SchedulingDefaults) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, dst)
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
