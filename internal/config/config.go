package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	MinPlayers = 2
	MaxPlayers = 6
)

// Config 对局配置
type Config struct {
	Game  GameConfig  `yaml:"game"`
	Redis RedisConfig `yaml:"redis"`
	Log   LogConfig   `yaml:"log"`
}

// PlayerConfig 玩家配置
type PlayerConfig struct {
	Name string `yaml:"name"`
	AI   bool   `yaml:"ai"`
}

// GameConfig 规则参数
type GameConfig struct {
	Players          []PlayerConfig `yaml:"players"`
	StartingHealth   int            `yaml:"starting_health"`    // 城堡初始血量
	StartingHandSize int            `yaml:"starting_hand_size"` // 开局每人发牌数
	MaxHandSize      int            `yaml:"max_hand_size"`      // 手牌上限，0 表示不限
	Jokers           int            `yaml:"jokers"`             // 1 或 2
	Seed             uint64         `yaml:"seed"`               // 0 表示按时间生成
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig 日志配置
type LogConfig struct {
	Verbose bool   `yaml:"verbose"` // 输出到终端而不是日志文件
	Dir     string `yaml:"dir"`     // 为空时使用 ~/.trash-castle
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// 在默认配置上解析，文件里没写的键保留默认值，显式写 0 的键保留 0
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults 补全玩家列表和名字
func (c *Config) applyDefaults() {
	if len(c.Game.Players) == 0 {
		c.Game.Players = defaultPlayers()
	}
	for i := range c.Game.Players {
		if c.Game.Players[i].Name == "" {
			c.Game.Players[i].Name = fmt.Sprintf("Player %d", i+1)
		}
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
}

// applyEnv 环境变量覆盖配置文件
func (c *Config) applyEnv() {
	if v := os.Getenv("GAME_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Game.Seed = seed
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

// Validate 检查配置是否可以开局
func (c *Config) Validate() error {
	n := len(c.Game.Players)
	if n < MinPlayers || n > MaxPlayers {
		return fmt.Errorf("player count must be between %d and %d, got %d", MinPlayers, MaxPlayers, n)
	}
	if c.Game.Jokers < 1 || c.Game.Jokers > 2 {
		return fmt.Errorf("jokers must be 1 or 2, got %d", c.Game.Jokers)
	}
	if c.Game.StartingHealth < 1 {
		return errors.New("starting_health must be positive")
	}
	if c.Game.StartingHandSize < 0 || c.Game.MaxHandSize < 0 {
		return errors.New("hand sizes must not be negative")
	}
	if c.Game.MaxHandSize > 0 && c.Game.StartingHandSize > c.Game.MaxHandSize {
		return fmt.Errorf("starting_hand_size %d exceeds max_hand_size %d", c.Game.StartingHandSize, c.Game.MaxHandSize)
	}
	return nil
}

func defaultPlayers() []PlayerConfig {
	return []PlayerConfig{
		{Name: "Player 1"},
		{Name: "Player 2", AI: true},
	}
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Game: GameConfig{
			Players:          defaultPlayers(),
			StartingHealth:   50,
			StartingHandSize: 5,
			Jokers:           2,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
	}
}
