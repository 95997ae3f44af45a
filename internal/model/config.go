package model

// --- Configuration Structures ---

type Config struct {
	APIURL        string `env:"API_URL"`
	APIToken      string `env:"API_TOKEN"`
	RefreshToken  string `env:"REFRESH_TOKEN"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	RestaurantID  string `env:"RESTAURANT_ID"`

	Printer PrinterConfig

	HTTPPort        int    `env:"HTTP_PORT" envDefault:"3002"`
	PollingInterval int    `env:"POLLING_INTERVAL" envDefault:"30000"` // milliseconds
	EnablePolling   bool   `env:"ENABLE_POLLING" envDefault:"true"`
	WSURL           string `env:"WS_URL"`

	DeviceID     string `env:"DEVICE_ID"`
	DeviceIDFile string `env:"DEVICE_ID_FILE" envDefault:".device-id"`
	EnvFile      string

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"`
	LogOutput string `env:"LOG_OUTPUT" envDefault:"stdout"`
	DevMode   bool   `env:"DEV_MODE"`

	Receipt ReceiptConfig
	Preview PreviewConfig
}

type PrinterConfig struct {
	Type PrinterType `env:"PRINTER_TYPE" envDefault:"thermal"`
	IP   string      `env:"PRINTER_IP"`
	Port int         `env:"PRINTER_PORT" envDefault:"9100"`
	Name string      `env:"PRINTER_NAME"`
}

type ReceiptConfig struct {
	Locale         string `env:"RECEIPT_LOCALE" envDefault:"pt-BR"`
	CurrencySymbol string `env:"CURRENCY_SYMBOL" envDefault:"R$"`
	PlatformName   string `env:"PLATFORM_NAME" envDefault:"Cardapix"`
	PlatformURL    string `env:"PLATFORM_URL" envDefault:"www.cardapix.com"`
}

type PreviewConfig struct {
	Enabled    bool   `env:"PREVIEW_ENABLED"`
	ChromePath string `env:"CHROME_PATH"`
}

// HasCredentials reports whether password auto-login is possible.
func (c Config) HasCredentials() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}
