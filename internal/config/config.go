package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Log      LogConfig
	Printer  PrinterConfig
	Receipt  ReceiptConfig
	Stock    StockConfig

	// EnvFileErr is set when no .env file could be read and only the
	// environment was used.
	EnvFileErr error
}

type AppConfig struct {
	Name string
	Env  string
}

type DatabaseConfig struct {
	Driver     string // postgres or sqlite
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	Timezone   string
	SQLitePath string
}

type LogConfig struct {
	Mode       string // production or development
	Level      string
	FileEnable bool
	Filename   string
}

type PrinterConfig struct {
	Transport   string // usb, network or none
	DevicePaths []string
	Address     string
	AssetsDir   string
}

type ReceiptConfig struct {
	CurrencySymbol string
	OutputDir      string
}

type StockConfig struct {
	AllowBackorder bool
}

// DefaultDevicePaths are probed in order; the first existing path wins.
var DefaultDevicePaths = []string{"/dev/usb/lp0", "/dev/usb/lp1", "/dev/lp0"}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	envErr := viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("APP_NAME", "poslite")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "poslite")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("DB_SQLITE_PATH", "./poslite.db")
	viper.SetDefault("LOG_MODE", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE_ENABLE", false)
	viper.SetDefault("LOG_FILENAME", "./logs/poslite.log")
	viper.SetDefault("PRINTER_TRANSPORT", "usb")
	viper.SetDefault("PRINTER_DEVICE_PATHS", strings.Join(DefaultDevicePaths, ","))
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_ASSETS_DIR", "./public")
	viper.SetDefault("RECEIPT_CURRENCY_SYMBOL", "$")
	viper.SetDefault("RECEIPT_OUTPUT_DIR", ".")
	viper.SetDefault("STOCK_ALLOW_BACKORDER", false)

	return &Config{
		App: AppConfig{
			Name: viper.GetString("APP_NAME"),
			Env:  viper.GetString("APP_ENV"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(viper.GetString("DB_DRIVER")),
			Host:       viper.GetString("DB_HOST"),
			Port:       viper.GetString("DB_PORT"),
			Name:       viper.GetString("DB_NAME"),
			User:       viper.GetString("DB_USER"),
			Password:   viper.GetString("DB_PASSWORD"),
			SSLMode:    viper.GetString("DB_SSL_MODE"),
			Timezone:   viper.GetString("DB_TIMEZONE"),
			SQLitePath: viper.GetString("DB_SQLITE_PATH"),
		},
		Log: LogConfig{
			Mode:       viper.GetString("LOG_MODE"),
			Level:      viper.GetString("LOG_LEVEL"),
			FileEnable: viper.GetBool("LOG_FILE_ENABLE"),
			Filename:   viper.GetString("LOG_FILENAME"),
		},
		Printer: PrinterConfig{
			Transport:   strings.ToLower(viper.GetString("PRINTER_TRANSPORT")),
			DevicePaths: splitList(viper.GetString("PRINTER_DEVICE_PATHS")),
			Address:     viper.GetString("PRINTER_ADDRESS"),
			AssetsDir:   viper.GetString("PRINTER_ASSETS_DIR"),
		},
		Receipt: ReceiptConfig{
			CurrencySymbol: viper.GetString("RECEIPT_CURRENCY_SYMBOL"),
			OutputDir:      viper.GetString("RECEIPT_OUTPUT_DIR"),
		},
		Stock: StockConfig{
			AllowBackorder: viper.GetBool("STOCK_ALLOW_BACKORDER"),
		},
		EnvFileErr: envErr,
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// splitList parses a comma separated list, dropping blanks
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
