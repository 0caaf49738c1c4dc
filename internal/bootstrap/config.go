package bootstrap

import (
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort      string  `mapstructure:"SERVER_PORT"`
	RedisUrl        string  `mapstructure:"REDIS_URL"`
	MongoUri        string  `mapstructure:"MONGO_URI"`
	IsLocalCors     bool    `mapstructure:"LOCAL_CORS"`
	EngineName      string  `mapstructure:"ENGINE_NAME"`
	EngineDepth     int     `mapstructure:"ENGINE_DEPTH"`
	EngineHeuristic bool    `mapstructure:"ENGINE_HEURISTIC"`
	EngineRating    float64 `mapstructure:"ENGINE_RATING"`
	ArenaMatches    int     `mapstructure:"ARENA_MATCHES"`
	ArenaParallel   int     `mapstructure:"ARENA_PARALLEL"`
	ArenaSeed       int64   `mapstructure:"ARENA_SEED"`
}

func Setup(cfgPath string) (*Config, error) {
	viper.SetConfigFile(cfgPath)

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENGINE_NAME", "AdultSmarterPlayer")
	viper.SetDefault("ENGINE_DEPTH", 4)
	viper.SetDefault("ENGINE_HEURISTIC", true)
	viper.SetDefault("ENGINE_RATING", 2000)
	viper.SetDefault("ARENA_MATCHES", 10)
	viper.SetDefault("ARENA_PARALLEL", 4)
	viper.SetDefault("ARENA_SEED", 1)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
