package pipeline

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"tp4-dataops/lib/configutil"
)

type SmtpConfig struct {
	Server       string   `json:"server"`
	Port         int      `json:"port"`
	EmailAddress string   `json:"email_address"`
	Password     string   `json:"password"`
	To           []string `json:"to"`
}

func (c SmtpConfig) Enabled() bool {
	return c.Server != "" && len(c.To) > 0
}

type Config struct {
	OutputDir          string     `json:"output_dir"`
	BudgetUrl          string     `json:"budget_url"`
	FootballUrl        string     `json:"football_url"`
	InpcPdfUrl         string     `json:"inpc_pdf_url"`
	HttpTimeoutSeconds int        `json:"http_timeout_seconds"`
	UserAgent          string     `json:"user_agent"`
	Smtp               SmtpConfig `json:"smtp"`
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.HttpTimeoutSeconds) * time.Second
}

// LoadConfig layers the container environment over config.json5 and
// fills the remaining holes with defaults. a missing config file is
// fine, the env knobs alone are enough to run.
func LoadConfig() (Config, error) {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if errors.Is(err, os.ErrNotExist) {
		err = nil
	}
	if err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setIntFromEnv(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*dst = parsed
}

func (c *Config) applyEnv() {
	setFromEnv(&c.OutputDir, "OUTPUT_DIR")
	setFromEnv(&c.BudgetUrl, "BUDGET_URL")
	setFromEnv(&c.FootballUrl, "FOOTBALL_URL")
	setFromEnv(&c.InpcPdfUrl, "INPC_PDF_URL")
	setFromEnv(&c.UserAgent, "USER_AGENT")
	setIntFromEnv(&c.HttpTimeoutSeconds, "HTTP_TIMEOUT_SECONDS")

	setFromEnv(&c.Smtp.Server, "SMTP_SERVER")
	setIntFromEnv(&c.Smtp.Port, "SMTP_PORT")
	setFromEnv(&c.Smtp.EmailAddress, "SMTP_EMAIL_ADDRESS")
	setFromEnv(&c.Smtp.Password, "SMTP_PASSWORD")
	if v := os.Getenv("SMTP_TO"); v != "" {
		c.Smtp.To = strings.Split(v, ",")
	}
}

// the football url has no default, the championship host moves around
// too much to hardcode.
func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "/out"
	}
	if c.BudgetUrl == "" {
		c.BudgetUrl = "https://services.tresor.mr/budget"
	}
	if c.InpcPdfUrl == "" {
		c.InpcPdfUrl = "https://ansade.mr/wp-content/uploads/2026/01/Note-INPC-decembre-2025_FR_VF.pdf"
	}
	if c.HttpTimeoutSeconds <= 0 {
		c.HttpTimeoutSeconds = 30
	}
	if c.UserAgent == "" {
		c.UserAgent = "TP4-DataOps-SID31"
	}
	if c.Smtp.Port == 0 {
		c.Smtp.Port = 25
	}
}
