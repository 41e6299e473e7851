package conf

// App-specific configuration structs & data.
// Must live in a package of its own so other packages within the app can depend on it without
// causing a circular dependency.

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.hushlink.app/hushlink/core"
	"gopkg.in/yaml.v3"
)

var AppName = "Hushlink"

var BuildTimestamp string

var Config AppConfig

type AppConfig struct {
	DataDir  string // The directory containing `hushlink.yml` is where all data will be stored.
	Database struct {
		Url string `yaml:"url"`
	} `yaml:"database"`
	Web struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		// BaseUrl is the externally visible origin used when constructing share
		// links, e.g. "https://hush.example.com". Defaults to http://{host}:{port}.
		BaseUrl string `yaml:"base-url"`
	} `yaml:"web"`
	Dashboard struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"` // bcrypt hash; generate with --bcrypt
	} `yaml:"dashboard"`
	Secrets struct {
		// MaxLengthKB caps the byte length of a submitted secret.
		MaxLengthKB int `yaml:"max-length-kb"`
		// TTL is how long an unretrieved secret survives before maintenance purges it.
		TTL time.Duration `yaml:"ttl"`
		// MasterKeys are base64-encoded 32-byte keys. The first key encrypts;
		// all keys are tried on decryption so old secrets survive key rotation.
		MasterKeys []string `yaml:"master-keys"`
	} `yaml:"secrets"`
	QrCode struct {
		Cache struct {
			Enabled      *bool         `yaml:"enabled"`
			TTL          time.Duration `yaml:"ttl"`
			MaxSizeBytes int64         `yaml:"max-size-bytes"`
		} `yaml:"cache"`
	} `yaml:"qr-code"`
	Logs struct {
		Retention  time.Duration `yaml:"retention"`
		Pagination struct {
			Limit int `yaml:"limit"`
		} `yaml:"pagination"`
	} `yaml:"logs"`
	Debug bool `yaml:"debug"`
}

var configYmlPath string

func ReadConfig(configYmlFile string) (AppConfig, error) {
	if BuildTimestamp == "" {
		BuildTimestamp = time.Now().Local().Format("2006-01-02 15:04:05")
	}

	c := &AppConfig{}
	var err error
	configYmlPath, err = filepath.Abs(configYmlFile)
	if err != nil {
		setDefaultsAndPrint(c)
		return *c, fmt.Errorf("Failed to get path to config file: %w", err)
	}

	buf, err := os.ReadFile(configYmlPath)
	if err != nil {
		setDefaultsAndPrint(c)
		return *c, fmt.Errorf("Failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(buf, c)
	if err != nil {
		setDefaultsAndPrint(c)
		return *c, fmt.Errorf("Failed to parse config: %w", err)
	}

	setDefaultsAndPrint(c)
	return *c, err
}

func setDefaultsAndPrint(c *AppConfig) {
	c.DataDir = filepath.Dir(configYmlPath)
	if c.Web.Host == "" {
		// Don’t replace this by string(…); the net.IP --> string conversion will fail.
		c.Web.Host = fmt.Sprintf("%s", core.GetOutboundIP())
	}
	if c.Web.Port == 0 {
		c.Web.Port = 9998
	}
	if c.Web.BaseUrl == "" {
		c.Web.BaseUrl = fmt.Sprintf("http://%s:%d", c.Web.Host, c.Web.Port)
	}

	if c.Secrets.MaxLengthKB == 0 {
		c.Secrets.MaxLengthKB = 100
	}
	if c.Secrets.TTL == 0 {
		c.Secrets.TTL = 24 * time.Hour
	}

	// Cache for QR Codes is enabled by default; only disable it when testing or debugging.
	if c.QrCode.Cache.Enabled == nil {
		c.QrCode.Cache.Enabled = core.Ptr(true)
	}
	if c.QrCode.Cache.TTL == 0 {
		c.QrCode.Cache.TTL = 7 * 24 * time.Hour
	}
	if c.QrCode.Cache.MaxSizeBytes == 0 {
		c.QrCode.Cache.MaxSizeBytes = 256 * 1024 * 1024 // 256MB
	}

	if c.Logs.Retention == 0 {
		c.Logs.Retention = 30 * 24 * time.Hour
	}
	if c.Logs.Pagination.Limit == 0 {
		c.Logs.Pagination.Limit = 100
	}

	// Print warnings for unsafe settings, just as FYI.
	// Master keys are redacted before the config is echoed.
	echoed := *c
	echoed.Secrets.MasterKeys = make([]string, len(c.Secrets.MasterKeys))
	for i := range echoed.Secrets.MasterKeys {
		echoed.Secrets.MasterKeys[i] = "<redacted>"
	}
	json, _ := json.MarshalIndent(echoed, "", "\t")
	fmt.Println(string(json))

	if c.Debug {
		slog.Warn("Debug mode is enabled")
	}
	if len(c.Secrets.MasterKeys) == 0 {
		slog.Warn("No master keys configured; the secrets API will refuse to start")
	}
	if !*c.QrCode.Cache.Enabled {
		slog.Warn("Cache disabled for QR Codes; performance will be affected")
	}
}
