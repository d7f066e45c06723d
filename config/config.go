package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisAddr   string
	KafkaBroker string
	ElasticURL  string

	JWTSecret string
	AdminPin  string

	// StrictOrderTransitions switches the order status machine from the
	// permissive historical behavior to the explicit transition table.
	StrictOrderTransitions bool
}

func Load() Config {
	viper.SetDefault("HTTP_ADDR", ":3000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASS", "postgres")
	viper.SetDefault("DB_NAME", "bakerydb")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("KAFKA_BROKER", "localhost:9092")
	viper.SetDefault("ELASTIC_URL", "http://localhost:9200")
	viper.SetDefault("JWT_SECRET", "verysecretkey")
	viper.SetDefault("ADMIN_PIN", "")
	viper.SetDefault("STRICT_ORDER_TRANSITIONS", false)
	viper.AutomaticEnv()

	return Config{
		HTTPAddr:               viper.GetString("HTTP_ADDR"),
		DBHost:                 viper.GetString("DB_HOST"),
		DBPort:                 viper.GetString("DB_PORT"),
		DBUser:                 viper.GetString("DB_USER"),
		DBPass:                 viper.GetString("DB_PASS"),
		DBName:                 viper.GetString("DB_NAME"),
		RedisAddr:              viper.GetString("REDIS_ADDR"),
		KafkaBroker:            viper.GetString("KAFKA_BROKER"),
		ElasticURL:             viper.GetString("ELASTIC_URL"),
		JWTSecret:              viper.GetString("JWT_SECRET"),
		AdminPin:               viper.GetString("ADMIN_PIN"),
		StrictOrderTransitions: viper.GetBool("STRICT_ORDER_TRANSITIONS"),
	}
}

func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}
