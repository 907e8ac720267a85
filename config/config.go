package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"recruit-flow" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret             string `default:"" env:"AUTH_JWT_SECRET"`
		JWTExpireInSec        int    `default:"3600" env:"AUTH_JWT_EXPIRE_SEC"`
		JWTRefreshExpireInSec int    `default:"86400" env:"AUTH_JWT_REFRESH_EXPIRE_SEC"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		FromEmail  string `default:"no-reply@recruit-flow.local" env:"SMTP_FROM_EMAIL"`
	}
	Sms struct {
		GatewayUrl string `default:"" env:"SMS_GATEWAY_URL"`
		ApiKey     string `default:"" env:"SMS_API_KEY"`
		Sender     string `default:"RecruitFlow" env:"SMS_SENDER"`
	}
	Push struct {
		VAPIDPublicKey  string `default:"" env:"PUSH_VAPID_PUBLIC_KEY"`
		VAPIDPrivateKey string `default:"" env:"PUSH_VAPID_PRIVATE_KEY"`
		Subscriber      string `default:"mailto:admin@recruit-flow.local" env:"PUSH_SUBSCRIBER"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"recruit-flow" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	Testing struct {
		// EnforceDeadline makes the server reject submissions after
		// StartedAt + duration + grace. Off by default: the client
		// countdown auto-submits and the server trusts it.
		EnforceDeadline  *bool `default:"false" env:"TEST_ENFORCE_DEADLINE"`
		DeadlineGraceSec int   `default:"60" env:"TEST_DEADLINE_GRACE_SEC"`
		InviteTTLHours   int   `default:"168" env:"TEST_INVITE_TTL_HOURS"`
	}
	UIParams struct {
		BaseUrl      string `default:"http://localhost:3000" env:"UI_BASE_URL"`
		TakeTestPath string `default:"http://localhost:3000/tests/take/" env:"UI_TAKE_TEST_PATH"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
