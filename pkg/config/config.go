package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Crawler struct {
		NavigationTimeoutSeconds int `yaml:"navigation_timeout_seconds"`
		InterSiteDelayMs         int `yaml:"inter_site_delay_ms"`
		CacheTTLMinutes          int `yaml:"cache_ttl_minutes"`
		MaxNavigationRetries     int `yaml:"max_navigation_retries"`
	} `yaml:"crawler"`
	Browser struct {
		Headless bool `yaml:"headless"`
	} `yaml:"browser"`
}

func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		// Set default values
		config.Server.Port = 3001
		config.Crawler.NavigationTimeoutSeconds = 30
		config.Crawler.InterSiteDelayMs = 2000
		config.Crawler.CacheTTLMinutes = 30
		config.Crawler.MaxNavigationRetries = 1
		config.Browser.Headless = true
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
