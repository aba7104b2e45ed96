package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	AppPort  string `validate:"required"`
	LogLevel string `validate:"oneof=trace debug info warn warning error fatal panic"`

	// 冷却时间：同一群 / 同一私聊两次请求的最小间隔
	Cooldown     time.Duration `validate:"gte=0"`
	DefaultCount int           `validate:"min=1,max=20"`

	EnableBilibili bool
	EnableWeibo    bool
	EnableDouyin   bool

	// ShowHotValue 仅在状态里展示，目前格式化输出不使用
	ShowHotValue    bool
	ShowLabel       bool
	IncludeTopWeibo bool

	RequestTimeout time.Duration `validate:"gt=0"`
	// MaxRetries 保留配置项，请求链路暂不重试
	MaxRetries int `validate:"gte=0"`

	// RedisAddr 为空时不启用列表缓存
	RedisAddr string
	CacheTTL  time.Duration `validate:"gte=0"`

	SweepSpec    string `validate:"required"`
	PrefetchSpec string `validate:"required"`
}

func Load() *Config {
	// .env 可选，不存在时直接使用环境变量
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("load .env failed: %v", err)
	}

	cfg := &Config{
		AppPort:  getEnv("APP_PORT", "9000"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),

		Cooldown:     getEnvSeconds("COOLDOWN_TIME", 10),
		DefaultCount: getEnvInt("DEFAULT_COUNT", 10),

		EnableBilibili: getEnvBool("ENABLE_BILIBILI", true),
		EnableWeibo:    getEnvBool("ENABLE_WEIBO", true),
		EnableDouyin:   getEnvBool("ENABLE_DOUYIN", true),

		ShowHotValue:    getEnvBool("SHOW_HOT_VALUE", true),
		ShowLabel:       getEnvBool("SHOW_LABEL", true),
		IncludeTopWeibo: getEnvBool("INCLUDE_TOP_WEIBO", true),

		RequestTimeout: getEnvSeconds("REQUEST_TIMEOUT", 10),
		MaxRetries:     getEnvInt("MAX_RETRIES", 2),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		CacheTTL:  getEnvSeconds("CACHE_TTL", 60),

		SweepSpec:    getEnv("SWEEP_CRON", "@every 10m"),
		PrefetchSpec: getEnv("PREFETCH_CRON", "*/5 * * * *"),
	}

	logrus.Infof("config loaded: port=%s cooldown=%s default_count=%d cache=%t",
		cfg.AppPort, cfg.Cooldown, cfg.DefaultCount, cfg.CacheEnabled())
	return cfg
}

// Validate 校验取值范围，错误信息包含字段名
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != "" && c.CacheTTL > 0
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		logrus.Warnf("config: %s=%q is not an integer, use %d", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		logrus.Warnf("config: %s=%q is not a bool, use %t", key, v, def)
		return def
	}
	return b
}

func getEnvSeconds(key string, def int) time.Duration {
	return time.Duration(getEnvInt(key, def)) * time.Second
}

// Now returns current time, 方便后续做可测试封装
func Now() time.Time {
	return time.Now()
}
