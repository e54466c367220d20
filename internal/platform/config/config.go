package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
	StorageRedis  = "redis"

	DefaultTileURL         = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultTileAttribution = "© OpenStreetMap contributors"
)

// Home is the fixed position reported by the static locator.
type Home struct {
	Lat float64
	Lng float64
}

type Config struct {
	DataDir         string
	DBPath          string
	StorePath       string
	LogPath         string
	Storage         string
	RedisAddr       string
	RedisPassword   string
	MapZoom         int
	TileURL         string
	TileAttribution string
	Home            *Home
	LogLevel        string
}

// New resolves configuration for dataDir from defaults, an optional
// config.yaml inside dataDir, and MAPTY_* environment variables.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	v.SetEnvPrefix("MAPTY")
	v.AutomaticEnv()

	v.SetDefault("storage", StorageSQLite)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("map_zoom", 13)
	v.SetDefault("tile_url", DefaultTileURL)
	v.SetDefault("tile_attribution", DefaultTileAttribution)
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		DataDir:         dataDir,
		DBPath:          filepath.Join(dataDir, "mapty.db"),
		StorePath:       filepath.Join(dataDir, "local-storage.json"),
		LogPath:         filepath.Join(dataDir, "mapty.log"),
		Storage:         strings.ToLower(v.GetString("storage")),
		RedisAddr:       v.GetString("redis_addr"),
		RedisPassword:   v.GetString("redis_password"),
		MapZoom:         v.GetInt("map_zoom"),
		TileURL:         v.GetString("tile_url"),
		TileAttribution: v.GetString("tile_attribution"),
		LogLevel:        v.GetString("log_level"),
	}
	if v.IsSet("home_lat") && v.IsSet("home_lng") {
		cfg.Home = &Home{Lat: v.GetFloat64("home_lat"), Lng: v.GetFloat64("home_lng")}
	}

	switch cfg.Storage {
	case StorageSQLite, StorageFile, StorageRedis:
	default:
		return Config{}, fmt.Errorf("unsupported storage %q", cfg.Storage)
	}
	if cfg.MapZoom < 1 || cfg.MapZoom > 19 {
		return Config{}, fmt.Errorf("map zoom must be between 1 and 19, got %d", cfg.MapZoom)
	}
	return cfg, nil
}
