package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

type Server struct {
	SQLitePath string `toml:"sqlite_path"`
	Debug      bool   `toml:"debug_mode"`
}

type Engine struct {
	TopPairs      int `toml:"top_pairs"`
	MinPairSample int `toml:"min_pair_sample"`
}

type Config struct {
	Server Server
	Engine Engine
}

func New() (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile("configs/server.toml", &cfg)
	if err != nil {
		return Config{}, err
	}
	if path := os.Getenv("CANCHA_SQLITE_PATH"); path != "" {
		cfg.Server.SQLitePath = path
	}
	cfg.Engine = cfg.Engine.withDefaults()
	return cfg, nil
}

func (e Engine) withDefaults() Engine {
	if e.TopPairs <= 0 {
		e.TopPairs = 5
	}
	if e.MinPairSample <= 0 {
		e.MinPairSample = 2
	}
	return e
}

// Default is the configuration used when no config file is present.
func Default() Config {
	return Config{
		Engine: Engine{}.withDefaults(),
	}
}
