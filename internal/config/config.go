package config

import (
	"strings"

	"github.com/rakshit-singh2/fundraising-backend/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
	Returns  ReturnsConfig  `mapstructure:"returns"`
}

type ServerConfig struct {
	Port            string   `mapstructure:"port"`
	Mode            string   `mapstructure:"mode"`
	ExposeErrors    bool     `mapstructure:"expose_errors"`    // 500 响应中是否回显底层错误
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // 秒
	CORSOrigins     []string `mapstructure:"cors_origins"`     // 允许跨域的来源，包含 "*" 时放行全部
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // postgres, sqlite
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	SSLMode      string `mapstructure:"sslmode"`
	Path         string `mapstructure:"path"`      // sqlite 文件路径，为空时使用内存库
	LogLevel     string `mapstructure:"log_level"` // silent, error, warn, info
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // 秒
	Workers  int `mapstructure:"workers"`  // 协程池大小
}

// ReturnsConfig 收益计算配置
type ReturnsConfig struct {
	Precision int32 `mapstructure:"precision"` // 分配结果保留的小数位数
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger.Options 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.Options 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.Options 接口
func (l LogConfig) GetFile() string {
	return l.File
}

// Load 从默认路径加载配置
func Load() *Config {
	return LoadFrom(viper.New(), "")
}

// LoadFrom 使用给定的 viper 实例加载配置，file 非空时只读取该文件
func LoadFrom(v *viper.Viper, file string) *Config {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/fundraising")
	}

	setDefaults(v)

	// 环境变量覆盖，例如 FUNDRAISING_SERVER_PORT
	v.SetEnvPrefix("fundraising")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		logger.Warn("Could not read config file, using defaults: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.expose_errors", true)
	v.SetDefault("server.shutdown_timeout", 10)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "projectsDB")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("task.interval", 60)
	v.SetDefault("task.workers", 4)
	v.SetDefault("returns.precision", 18)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file", "logs/app.log")
}
