package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/flavorvault/flavorvault/assets"
	"github.com/flavorvault/flavorvault/emailer"
	"github.com/flavorvault/flavorvault/handler"
	"github.com/flavorvault/flavorvault/router"
	"github.com/flavorvault/flavorvault/store"
	"github.com/flavorvault/flavorvault/store/jsondb"
	"github.com/flavorvault/flavorvault/store/mongodb"
	"github.com/flavorvault/flavorvault/telegram"
	"github.com/flavorvault/flavorvault/templates"
	"github.com/flavorvault/flavorvault/util"
)

var (
	// command-line banner information
	appVersion = "development"
	gitCommit  = "N/A"
	buildTime  = time.Now().UTC().Format("01-02-2006 15:04:05")
	// configuration variables
	flagBindAddress    string
	flagBaseURL        string
	flagDebug          bool
	flagSessionSecret  string
	flagDBPath         string = util.DefaultDBPath
	flagMongoURI       string
	flagMongoDBName    string = util.DefaultMongoDBName
	flagStoreTimeout          = util.DefaultStoreTimeout
	flagSendgridApiKey string
	flagEmailFrom      string
	flagEmailFromName  string = util.DefaultEmailFromName
	flagSmtpHostname   string
	flagSmtpPort       int = util.DefaultSmtpPort
	flagSmtpUsername   string
	flagSmtpPassword   string
	flagSmtpNoTLSCheck bool
	flagSmtpEncryption string = "STARTTLS"
	flagSmtpAuthType   string = "NONE"
	flagTelegramToken  string
	flagTelegramChatID int64
)

func init() {
	// .env is optional, real environment variables win
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
	}

	// command-line flags and env variables
	flag.StringVar(&flagBindAddress, "bind-address", util.LookupEnvOrString("BIND_ADDRESS", util.DefaultBindAddressFromEnv()), "Address:Port to which the app will be bound.")
	flag.StringVar(&flagBaseURL, "base-url", util.LookupEnvOrString("BASE_URL", flagBaseURL), "Public URL used in emails and QR codes, e.g. https://recipes.example.com")
	flag.BoolVar(&flagDebug, "debug", util.LookupEnvOrBool("DEBUG", flagDebug), "Enable debug mode and logging.")
	flag.StringVar(&flagSessionSecret, "session-secret", util.LookupEnvOrString("SECRET_KEY", util.LookupEnvOrString("SESSION_SECRET", flagSessionSecret)), "The key used to sign session cookies.")
	flag.StringVar(&flagDBPath, "db-path", util.LookupEnvOrString("DB_PATH", flagDBPath), "Directory of the JSON database, used when no MongoDB URI is set.")
	flag.StringVar(&flagMongoURI, "mongo-uri", util.LookupEnvOrString("MONGO_URI", flagMongoURI), "MongoDB connection string.")
	flag.StringVar(&flagMongoDBName, "mongo-dbname", util.LookupEnvOrString("MONGO_DBNAME", flagMongoDBName), "MongoDB database name.")
	flag.DurationVar(&flagStoreTimeout, "store-timeout", util.LookupEnvOrDuration("STORE_TIMEOUT", flagStoreTimeout), "Timeout of a single database operation.")
	flag.StringVar(&flagSendgridApiKey, "sendgrid-api-key", util.LookupEnvOrString("SENDGRID_API_KEY", flagSendgridApiKey), "Your sendgrid api key.")
	flag.StringVar(&flagEmailFrom, "email-from", util.LookupEnvOrString("EMAIL_FROM_ADDRESS", flagEmailFrom), "'From' email address.")
	flag.StringVar(&flagEmailFromName, "email-from-name", util.LookupEnvOrString("EMAIL_FROM_NAME", flagEmailFromName), "'From' email name.")
	flag.StringVar(&flagSmtpHostname, "smtp-hostname", util.LookupEnvOrString("SMTP_HOSTNAME", flagSmtpHostname), "SMTP Hostname")
	flag.IntVar(&flagSmtpPort, "smtp-port", util.LookupEnvOrInt("SMTP_PORT", flagSmtpPort), "SMTP Port")
	flag.StringVar(&flagSmtpUsername, "smtp-username", util.LookupEnvOrString("SMTP_USERNAME", flagSmtpUsername), "SMTP Username")
	flag.StringVar(&flagSmtpPassword, "smtp-password", util.LookupEnvOrString("SMTP_PASSWORD", flagSmtpPassword), "SMTP Password")
	flag.BoolVar(&flagSmtpNoTLSCheck, "smtp-no-tls-check", util.LookupEnvOrBool("SMTP_NO_TLS_CHECK", flagSmtpNoTLSCheck), "Disable TLS verification for SMTP. This is potentially dangerous.")
	flag.StringVar(&flagSmtpEncryption, "smtp-encryption", util.LookupEnvOrString("SMTP_ENCRYPTION", flagSmtpEncryption), "SMTP Encryption : NONE, SSL, SSLTLS, TLS or STARTTLS (by default)")
	flag.StringVar(&flagSmtpAuthType, "smtp-auth-type", util.LookupEnvOrString("SMTP_AUTH_TYPE", flagSmtpAuthType), "SMTP Auth Type : PLAIN, LOGIN or NONE.")
	flag.StringVar(&flagTelegramToken, "telegram-token", util.LookupEnvOrString("TELEGRAM_TOKEN", flagTelegramToken), "Telegram bot token announcing new recipes.")
	flag.Int64Var(&flagTelegramChatID, "telegram-chat-id", util.LookupEnvOrInt64("TELEGRAM_CHAT_ID", flagTelegramChatID), "Telegram chat receiving recipe announcements.")
	flag.Parse()

	// update runtime config
	util.BindAddress = flagBindAddress
	util.BaseURL = flagBaseURL
	util.Debug = flagDebug
	util.SessionSecret = []byte(flagSessionSecret)
	util.DBPath = flagDBPath
	util.MongoURI = flagMongoURI
	util.MongoDBName = flagMongoDBName
	util.StoreTimeout = flagStoreTimeout
	util.SendgridApiKey = flagSendgridApiKey
	util.EmailFrom = flagEmailFrom
	util.EmailFromName = flagEmailFromName
	util.SmtpHostname = flagSmtpHostname
	util.SmtpPort = flagSmtpPort
	util.SmtpUsername = flagSmtpUsername
	util.SmtpPassword = flagSmtpPassword
	util.SmtpNoTLSCheck = flagSmtpNoTLSCheck
	util.SmtpEncryption = flagSmtpEncryption
	util.SmtpAuthType = flagSmtpAuthType
	util.TelegramToken = flagTelegramToken
	util.TelegramChatID = flagTelegramChatID

	telegram.TelegramToken = util.TelegramToken
	telegram.TelegramChatID = util.TelegramChatID

	// print app information
	fmt.Println("FlavorVault")
	fmt.Println("App Version\t:", appVersion)
	fmt.Println("Git Commit\t:", gitCommit)
	fmt.Println("Build Time\t:", buildTime)
	fmt.Println("Bind address\t:", util.BindAddress)
	fmt.Println("Debug\t\t:", util.Debug)
	if util.MongoURI != "" {
		fmt.Println("Database\t: mongodb", util.MongoDBName)
	} else {
		fmt.Println("Database\t: json", util.DBPath)
	}
	fmt.Println("Email from\t:", util.EmailFrom)
}

func main() {
	if len(util.SessionSecret) == 0 {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatal("Cannot generate session secret: ", err)
		}
		util.SessionSecret = secret
		log.Warn("No session secret configured, sessions will not survive a restart")
	}

	db, err := openStore()
	if err != nil {
		log.Fatal("Cannot open database: ", err)
	}

	if err := db.Init(); err != nil {
		log.Fatal("Cannot init database: ", err)
	}

	if err := telegram.Start(); err != nil {
		log.Warn("Telegram announcements disabled: ", err)
	}

	// set app extra data
	extraData := make(map[string]string)
	extraData["appVersion"] = appVersion

	app := router.New(templates.FS, extraData, util.SessionSecret)
	handler.Mount(app, db, newMailer())

	// embedded css
	assetHandler := http.FileServer(http.FS(assets.FS))
	app.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", assetHandler)))

	app.Logger.Fatal(app.Start(util.BindAddress))
}

// openStore picks MongoDB when a connection string is configured and the
// JSON document store otherwise
func openStore() (store.IStore, error) {
	if util.MongoURI != "" {
		return mongodb.New(util.MongoURI, util.MongoDBName)
	}
	return jsondb.New(util.DBPath)
}

func newMailer() emailer.Emailer {
	switch {
	case util.EmailFrom == "":
		return nil
	case util.SmtpHostname != "":
		return emailer.NewSmtpMail(util.SmtpHostname, util.SmtpPort, util.SmtpUsername, util.SmtpPassword,
			util.SmtpNoTLSCheck, util.SmtpAuthType, util.EmailFromName, util.EmailFrom, util.SmtpEncryption)
	case util.SendgridApiKey != "":
		return emailer.NewSendgridApiMail(util.SendgridApiKey, util.EmailFromName, util.EmailFrom)
	default:
		return nil
	}
}
