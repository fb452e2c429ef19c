package contactform

import (
	"time"

	"github.com/dmitrymomot/contactform/core/cookie"
	"github.com/dmitrymomot/contactform/core/server"
	"github.com/dmitrymomot/contactform/integration/database/pg"
	"github.com/dmitrymomot/contactform/integration/database/redis"
	"github.com/dmitrymomot/contactform/integration/email/postmark"
	"github.com/dmitrymomot/contactform/integration/email/smtp"
)

// Submission transports.
const (
	TransportDelay    = "delay"
	TransportDev      = "dev"
	TransportPostmark = "postmark"
	TransportSMTP     = "smtp"
	TransportPostgres = "postgres"
)

// Preference stores.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	Server   server.Config
	Cookie   cookie.Config
	Redis    redis.Config
	DB       pg.Config
	Postmark postmark.Config
	SMTP     smtp.Config
	Form     FormConfig

	AppName  string `env:"APP_NAME" envDefault:"contactform"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// FormConfig configures the widget itself.
type FormConfig struct {
	Transport   string        `env:"FORM_TRANSPORT" envDefault:"delay"`
	SubmitDelay time.Duration `env:"FORM_SUBMIT_DELAY" envDefault:"1500ms"`
	ResetDelay  time.Duration `env:"FORM_RESET_DELAY" envDefault:"2s"`
	// FieldsFile replaces the embedded field registry.
	FieldsFile string `env:"FORM_FIELDS_FILE"`
	DevMailDir string `env:"FORM_DEV_MAIL_DIR" envDefault:"./tmp/mail"`
	// Recipient receives mailed submissions. The Postmark transport
	// defaults to its support address.
	Recipient          string        `env:"FORM_RECIPIENT"`
	SessionIdleTimeout time.Duration `env:"FORM_SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	PreferenceStore    string        `env:"PREFERENCE_STORE" envDefault:"memory"`
}

// IsProduction reports whether the app runs in production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
