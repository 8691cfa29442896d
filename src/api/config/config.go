package config

import (
	"log"
	"os"
)

type Config struct {
	MySQLDSN         string
	RedisURL         string
	JWTSecret        string
	Port             string
	AdminAddr        string
	DiscordToken     string
	DiscordChannelID string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

// optenv is getenv for settings that may legitimately be absent.
func optenv(key string) string { return os.Getenv(key) }

func Load() Config {
	return Config{
		MySQLDSN:         getenv("MYSQL_DSN", "treasurygov:treasurygov@tcp(127.0.0.1:3306)/treasurygov?parseTime=true"),
		RedisURL:         getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret:        getenv("JWT_SECRET", ""),
		Port:             getenv("PORT", "8080"),
		AdminAddr:        optenv("ADMIN_ADDR"),
		DiscordToken:     optenv("DISCORD_TOKEN"),
		DiscordChannelID: optenv("DISCORD_CHANNEL_ID"),
	}
}
