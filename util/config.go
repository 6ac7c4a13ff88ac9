package util

import "time"

// Runtime config
var (
	BindAddress    string
	BaseURL        string
	Debug          bool
	SessionSecret  []byte
	DBPath         string
	MongoURI       string
	MongoDBName    string
	StoreTimeout   time.Duration
	SendgridApiKey string
	EmailFrom      string
	EmailFromName  string
	SmtpHostname   string
	SmtpPort       int
	SmtpUsername   string
	SmtpPassword   string
	SmtpNoTLSCheck bool
	SmtpEncryption string
	SmtpAuthType   string
	TelegramToken  string
	TelegramChatID int64
)

const (
	DefaultUsername      = "admin"
	DefaultPassword      = "admin"
	DefaultDBPath        = "./db"
	DefaultMongoDBName   = "flavorvault"
	DefaultStoreTimeout  = 5 * time.Second
	DefaultBindAddress   = "0.0.0.0:5000"
	DefaultEmailFromName = "FlavorVault"
	DefaultSmtpPort      = 25

	UsernameEnvVar     = "ADMIN_USERNAME"
	PasswordEnvVar     = "ADMIN_PASSWORD"
	PasswordHashEnvVar = "ADMIN_PASSWORD_HASH"
	LogLevel           = "LOG_LEVEL"
)
