package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken      string
	GuildID           string
	ModRoleID         string
	RustaceanRoleID   string
	ShowcaseChannelID string
	BeginnerChannelID string
	ReportsChannelID  string // optional
	DatabasePath      string
	CommandPrefix     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:      os.Getenv("DISCORD_TOKEN"),
		GuildID:           os.Getenv("GUILD_ID"),
		ModRoleID:         os.Getenv("MOD_ROLE_ID"),
		RustaceanRoleID:   os.Getenv("RUSTACEAN_ROLE_ID"),
		ShowcaseChannelID: os.Getenv("SHOWCASE_CHANNEL_ID"),
		BeginnerChannelID: os.Getenv("BEGINNER_CHANNEL_ID"),
		ReportsChannelID:  os.Getenv("REPORTS_CHANNEL_ID"),
		DatabasePath:      os.Getenv("DATABASE_PATH"),
		CommandPrefix:     os.Getenv("COMMAND_PREFIX"),
	}

	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("missing DISCORD_TOKEN")
	}
	if cfg.GuildID == "" {
		return nil, fmt.Errorf("missing GUILD_ID")
	}
	if cfg.RustaceanRoleID == "" {
		return nil, fmt.Errorf("missing RUSTACEAN_ROLE_ID")
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "data/rustbot.db"
	}
	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = "?"
	}

	return cfg, nil
}
