package config

import (
	"encoding/json"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr      string `json:"listenAddr"`
	DBDriver        string `json:"dbDriver"`
	DBDSN           string `json:"dbDsn"`
	TokenHours      int    `json:"tokenHours"`
	LogLevel        string `json:"logLevel"`
	ChromeBin       string `json:"chromeBin"`
	PlantName       string `json:"plantName"`
	DefaultManager  string `json:"defaultManager"`
	DeliveryProduct string `json:"deliveryProduct"`
	JWTSecret       string `json:"-"`
	AdminEmail      string `json:"-"`
	AdminPassword   string `json:"-"`
}

var (
	cfg = defaults()
	mu  sync.RWMutex
)

var configFilePath = "./plant_config.json"

func defaults() Config {
	return Config{
		ListenAddr:      ":5000",
		DBDriver:        "sqlite3",
		DBDSN:           "./plant.db?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on",
		TokenHours:      12,
		LogLevel:        "info",
		PlantName:       "Meter Enclosure Manufacturing Plant, Galigamuwa",
		DefaultManager:  "Kanishka Ravindranath",
		DeliveryProduct: "CEB Meter Enclosure",
		JWTSecret:       "plant-report-secret",
	}
}

// SetFilePath は設定ファイルの場所を変更します (テスト用)。
func SetFilePath(path string) {
	mu.Lock()
	defer mu.Unlock()
	configFilePath = path
}

// LoadConfig は設定ファイルと環境変数 (.env を含む) から設定を読み込みます。
// 設定ファイルが無い場合は既定値を使います。
func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	_ = godotenv.Load()

	loaded := defaults()
	file, err := os.ReadFile(configFilePath)
	if err != nil && !os.IsNotExist(err) {
		return cfg, err
	}
	if err == nil {
		if err := json.Unmarshal(file, &loaded); err != nil {
			return cfg, err
		}
	}
	applyEnv(&loaded)
	fillDefaults(&loaded)
	cfg = loaded
	setLogLevel(cfg.LogLevel)
	return cfg, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("PLANT_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("PLANT_DB_DRIVER"); v != "" {
		c.DBDriver = v
	}
	if v := os.Getenv("PLANT_DB_DSN"); v != "" {
		c.DBDSN = v
	}
	if v := os.Getenv("PLANT_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v, err := strconv.Atoi(os.Getenv("PLANT_TOKEN_HOURS")); err == nil && v > 0 {
		c.TokenHours = v
	}
	if v := os.Getenv("PLANT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PLANT_CHROME_BIN"); v != "" {
		c.ChromeBin = v
	}
	c.AdminEmail = os.Getenv("PLANT_ADMIN_EMAIL")
	c.AdminPassword = os.Getenv("PLANT_ADMIN_PASSWORD")
}

func fillDefaults(c *Config) {
	d := defaults()
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
	if c.DBDriver == "" {
		c.DBDriver = d.DBDriver
	}
	if c.DBDSN == "" {
		c.DBDSN = d.DBDSN
	}
	if c.TokenHours <= 0 {
		c.TokenHours = d.TokenHours
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.JWTSecret == "" {
		c.JWTSecret = d.JWTSecret
	}
}

// SaveConfig は画面から変更できる項目を設定ファイルに保存します。
// 接続先と秘密鍵は環境変数側の値を維持します。
func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	newCfg.JWTSecret = cfg.JWTSecret
	newCfg.AdminEmail, newCfg.AdminPassword = cfg.AdminEmail, cfg.AdminPassword
	fillDefaults(&newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	setLogLevel(cfg.LogLevel)
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
