package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingLLMKey     = errors.New("llm api key is missing")
	ErrMissingTavilyKey  = errors.New("tavily api key is missing")
	ErrMissingSerperKey  = errors.New("serper api key is missing")
	ErrMissingSearXNGURL = errors.New("searxng base_url is missing")
	ErrUnknownProvider   = errors.New("unknown provider")
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Datasets    DatasetsConfig    `yaml:"datasets"`
	Crawler     CrawlerConfig     `yaml:"crawler"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Log         LogConfig         `yaml:"log"`
	Output      OutputConfig      `yaml:"output"`
	Server      ServerConfig      `yaml:"server"`
}

// LLMConfig LLM 相关配置，provider 取 gemini 或 openai
type LLMConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

// SearchConfig 搜索相关配置，Provider 为 datasets 未指定时的默认搜索源
type SearchConfig struct {
	Provider string        `yaml:"provider"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
	Serper   SerperConfig  `yaml:"serper"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"` // 秒
}

// SerperConfig Serper 配置
type SerperConfig struct {
	APIKey  string `yaml:"api_key"`
	Country string `yaml:"country"`
}

// DatasetsConfig 数据集检索配置
type DatasetsConfig struct {
	Provider  string `yaml:"provider"`
	CacheSize int    `yaml:"cache_size"`
}

// CrawlerConfig 页脚爬虫配置
type CrawlerConfig struct {
	Timeout     int    `yaml:"timeout"` // 秒
	Parallelism int    `yaml:"parallelism"`
	UserAgent   string `yaml:"user_agent"`
	MaxLinks    int    `yaml:"max_links"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS           int `yaml:"qps"`
	RPM           int `yaml:"rpm"`
	SearchWorkers int `yaml:"search_workers"`
}

// OutputConfig 报告输出配置
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout int    `yaml:"timeout"` // 秒
}

// LoadConfig 从指定路径加载配置。
// 先加载当前目录的 .env，文件不存在时只使用默认值和环境变量。
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case "gemini":
			c.LLM.Model = "gemini-1.5-pro"
		case "openai":
			c.LLM.Model = "gpt-4o-mini"
		}
	}
	if c.Search.SearXNG.Timeout <= 0 {
		c.Search.SearXNG.Timeout = 10
	}
	if c.Search.Serper.Country == "" {
		c.Search.Serper.Country = "in"
	}
	if c.Datasets.Provider == "" {
		c.Datasets.Provider = c.Search.Provider
	}
	if c.Datasets.Provider == "" {
		c.Datasets.Provider = "serper"
	}
	if c.Datasets.CacheSize <= 0 {
		c.Datasets.CacheSize = 256
	}
	if c.Crawler.Timeout <= 0 {
		c.Crawler.Timeout = 30
	}
	if c.Crawler.Parallelism <= 0 {
		c.Crawler.Parallelism = 4
	}
	if c.Crawler.UserAgent == "" {
		c.Crawler.UserAgent = "Mozilla/5.0 (compatible; site_radar/1.0)"
	}
	if c.Crawler.MaxLinks <= 0 {
		c.Crawler.MaxLinks = 50
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 60
	}
	if c.Concurrency.SearchWorkers <= 0 {
		c.Concurrency.SearchWorkers = 4
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = 300
	}
}

// applyEnv 环境变量覆盖配置文件，LLM_API_KEY 优先于 GOOGLE_API_KEY
func (c *Config) applyEnv() {
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" && c.LLM.Provider == "gemini" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		c.Search.Tavily.APIKey = v
	}
	if v := os.Getenv("SERPER_API_KEY"); v != "" {
		c.Search.Serper.APIKey = v
	}
}

// Validate 检查运行所需的密钥与 provider，返回所有问题
func (c *Config) Validate() error {
	var errs []error
	switch c.LLM.Provider {
	case "gemini", "openai":
	default:
		errs = append(errs, fmt.Errorf("llm provider %q: %w", c.LLM.Provider, ErrUnknownProvider))
	}
	if c.LLM.APIKey == "" {
		errs = append(errs, ErrMissingLLMKey)
	}
	// 竞品列表固定使用 Tavily
	if c.Search.Tavily.APIKey == "" {
		errs = append(errs, ErrMissingTavilyKey)
	}
	switch c.Datasets.Provider {
	case "serper":
		if c.Search.Serper.APIKey == "" {
			errs = append(errs, ErrMissingSerperKey)
		}
	case "searxng":
		if c.Search.SearXNG.BaseURL == "" {
			errs = append(errs, ErrMissingSearXNGURL)
		}
	case "tavily":
	default:
		errs = append(errs, fmt.Errorf("datasets provider %q: %w", c.Datasets.Provider, ErrUnknownProvider))
	}
	return errors.Join(errs...)
}

func (c *Config) CrawlerTimeout() time.Duration {
	return time.Duration(c.Crawler.Timeout) * time.Second
}

func (c *Config) ServerTimeout() time.Duration {
	return time.Duration(c.Server.Timeout) * time.Second
}
