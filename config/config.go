package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"ledgerboard/logger"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Email     EmailConfig     `mapstructure:"email"`
	AMQP      AMQPConfig      `mapstructure:"amqp"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig 数据库配置，未启用时账本只保存在内存中
type DatabaseConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// LedgerConfig 账本配置
type LedgerConfig struct {
	SeedDemo  bool   `mapstructure:"seed_demo"`
	Location  string `mapstructure:"location"`
	WeekStart string `mapstructure:"week_start"`
}

// EmailConfig 预算超支提醒邮件
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

// AMQPConfig 变更事件发布
type AMQPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
	Queue    string `mapstructure:"queue"`
}

// RateLimitConfig 写接口限流
type RateLimitConfig struct {
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			logger.L().Warnf("无法读取指定配置文件 %s: %v", configPath, err)
		} else {
			logger.L().Infof("已合并外部配置文件: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/ledgerboard")
		externalViper.AddConfigPath("$HOME/.ledgerboard")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				logger.L().Warnf("合并外部配置失败: %v", err)
			} else {
				logger.L().Infof("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

// Validate 汇总所有配置问题后一次返回
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port 不能为空"))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode 无效: %q", c.Server.Mode))
	}
	if c.Database.Enabled && c.Database.DBName == "" {
		errs = append(errs, errors.New("启用数据库时 database.dbname 不能为空"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("ledger.location 无效: %w", err))
	}
	if _, err := c.FirstWeekday(); err != nil {
		errs = append(errs, err)
	}
	if c.Email.Enabled && (c.Email.Host == "" || c.Email.To == "") {
		errs = append(errs, errors.New("启用邮件时 email.host 和 email.to 不能为空"))
	}
	if c.AMQP.Enabled && c.AMQP.URL == "" {
		errs = append(errs, errors.New("启用 AMQP 时 amqp.url 不能为空"))
	}
	if c.RateLimit.MaxRequests < 0 {
		errs = append(errs, errors.New("ratelimit.max_requests 不能为负数"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("配置校验失败: %w", errors.Join(errs...))
	}
	return nil
}

// Location 账本使用的时区，预算周期和按天解析都以此为准
func (c *Config) Location() (*time.Location, error) {
	if c.Ledger.Location == "" || c.Ledger.Location == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Ledger.Location)
}

// FirstWeekday 每周第一天，默认周日
func (c *Config) FirstWeekday() (time.Weekday, error) {
	switch strings.ToLower(c.Ledger.WeekStart) {
	case "", "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	}
	return time.Sunday, fmt.Errorf("ledger.week_start 仅支持 sunday 或 monday: %q", c.Ledger.WeekStart)
}

// MustLoadConfig 加载配置，失败则 panic
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	return cfg
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("配置未初始化，请先调用 LoadConfig")
	}
	return GlobalConfig
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log := logger.L()
	log.Infof("当前配置:")
	log.Infof("  服务器: %s (模式: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	if GlobalConfig.Database.Enabled {
		log.Infof("  数据库: %s@%s:%s/%s",
			GlobalConfig.Database.Username,
			GlobalConfig.Database.Host,
			GlobalConfig.Database.Port,
			GlobalConfig.Database.DBName)
	} else {
		log.Infof("  数据库: 未启用（内存账本）")
	}
	log.Infof("  演示数据: %v, 时区: %s", GlobalConfig.Ledger.SeedDemo, GlobalConfig.Ledger.Location)
	log.Infof("  邮件提醒: %v, AMQP: %v", GlobalConfig.Email.Enabled, GlobalConfig.AMQP.Enabled)
}
