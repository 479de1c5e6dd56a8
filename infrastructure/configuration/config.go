package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/safak4545x/swifttube/infrastructure/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App     App     `json:"app"`
	Cache   Cache   `json:"cache"`
	Locale  Locale  `json:"locale"`
	Scraper Scraper `json:"scraper"`
	YouTube YouTube `json:"youtube"`
}

type App struct {
	Port int `json:"port"`
}

// Cache configures the two-tier store. TTLs are minutes in config.json.
type Cache struct {
	Root              string `json:"root"`
	MemoryEntries     int    `json:"memoryEntries"`
	ResultTTLMinutes  int    `json:"resultTTLMinutes"`
	AssetTTLMinutes   int    `json:"assetTTLMinutes"`
	EnrichTTLMinutes  int    `json:"enrichTTLMinutes"`
	SettingTTLMinutes int    `json:"settingTTLMinutes"`
}

type Locale struct {
	Language string `json:"language"`
	Region   string `json:"region"`
}

// Scraper configures the fixed request identity and innertube client
// context. Keeping these constant keeps scraped response shapes
// reproducible across runs.
type Scraper struct {
	UserAgent      string `json:"userAgent"`
	AcceptLanguage string `json:"acceptLanguage"`
	ClientName     string `json:"clientName"`
	ClientVersion  string `json:"clientVersion"`
	PageLimit      int    `json:"pageLimit"`
}

type YouTube struct {
	APIKey string `json:"apiKey"`
}

var C Config

func init() {
	// Non-destructive: OS env keeps precedence over .env files.
	_ = godotenv.Load("config.env", ".env")
	LoadConfig()
	applyDefaults(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found, using defaults")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func applyDefaults(C *Config) {
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10801
	}

	if C.Cache.Root == "" {
		C.Cache.Root = os.Getenv("CACHE_ROOT")
	}
	if C.Cache.Root == "" {
		if home, err := os.UserHomeDir(); err == nil {
			C.Cache.Root = filepath.Join(home, ".swifttube", "cache")
		} else {
			C.Cache.Root = filepath.Join(os.TempDir(), "swifttube-cache")
		}
	}
	if C.Cache.MemoryEntries == 0 {
		C.Cache.MemoryEntries = 512
	}
	if C.Cache.ResultTTLMinutes == 0 {
		C.Cache.ResultTTLMinutes = 30
	}
	if C.Cache.AssetTTLMinutes == 0 {
		C.Cache.AssetTTLMinutes = 24 * 60
	}
	if C.Cache.EnrichTTLMinutes == 0 {
		C.Cache.EnrichTTLMinutes = 6 * 60
	}
	if C.Cache.SettingTTLMinutes == 0 {
		// Settings are "just another cached value" with a ~1 year TTL.
		C.Cache.SettingTTLMinutes = 365 * 24 * 60
	}

	if C.Locale.Language == "" {
		C.Locale.Language = "en"
	}
	if C.Locale.Region == "" {
		C.Locale.Region = "US"
	}

	if C.Scraper.UserAgent == "" {
		C.Scraper.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	if C.Scraper.AcceptLanguage == "" {
		C.Scraper.AcceptLanguage = "en-US,en;q=0.9"
	}
	if C.Scraper.ClientName == "" {
		C.Scraper.ClientName = "WEB"
	}
	if C.Scraper.ClientVersion == "" {
		C.Scraper.ClientVersion = "2.20240101.00.00"
	}
	if C.Scraper.PageLimit == 0 {
		C.Scraper.PageLimit = 12
	}

	if C.YouTube.APIKey == "" {
		C.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
}
