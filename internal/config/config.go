package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tableside/internal/billing"
	"tableside/internal/geo"
)

// Config holds all configuration for the table-ordering system.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	RabbitMQ   RabbitMQConfig   `yaml:"rabbitmq"`
	Restaurant RestaurantConfig `yaml:"restaurant"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RabbitMQConfig holds RabbitMQ connection configuration.
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// RestaurantConfig holds ordering policy. Location is optional: leaving it unset
// disables diner ordering entirely, since the eligibility gate then never passes.
type RestaurantConfig struct {
	Name               string     `yaml:"name"`
	Location           *geo.Point `yaml:"location"`
	EligibilityRadiusM float64    `yaml:"eligibility_radius_m"`
	TaxRate            float64    `yaml:"tax_rate"`
}

// Load reads configuration from a YAML file and applies defaults.
func Load(filename string) (*Config, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(raw, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Restaurant.EligibilityRadiusM <= 0 {
		config.Restaurant.EligibilityRadiusM = geo.DefaultThresholdMeters
	}
	if config.Restaurant.TaxRate <= 0 {
		config.Restaurant.TaxRate = billing.DefaultTaxRate
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.Database.Host == "" || c.Database.Port == 0 {
		return fmt.Errorf("database host and port are required")
	}
	if c.RabbitMQ.Host == "" || c.RabbitMQ.Port == 0 {
		return fmt.Errorf("rabbitmq host and port are required")
	}
	return nil
}

// DatabaseURL returns a PostgreSQL connection URL.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL.
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
