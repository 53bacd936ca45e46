package config

import (
	"flag"

	"github.com/caarlos0/env/v6"
)

/*
адрес и порт запуска сервиса: переменная окружения ОС RUN_ADDRESS или флаг -a;
адрес подключения к базе данных: переменная окружения ОС DATABASE_URI или флаг -d;
логин и bcrypt-хеш пароля администратора: ADMIN_LOGIN / ADMIN_PASSWORD_HASH.
*/

type ServerConfig struct {
	RunAddress          string `env:"RUN_ADDRESS"`
	DatabaseDSN         string `env:"DATABASE_URI"`
	AdminLogin          string `env:"ADMIN_LOGIN"`
	AdminPasswordHash   string `env:"ADMIN_PASSWORD_HASH"`
	SecretKey           string `env:"SECRET_KEY"`
	AuthCookieExpiresIn int    `env:"AUTH_COOKIE_EXPIRES_IN" envDefault:"86400"`

	Secret []byte `env:"-"`
}

func NewConfig() (*ServerConfig, error) {
	var params ServerConfig
	err := env.Parse(&params)
	if err != nil {
		return nil, err
	}

	var commandLineParams ServerConfig

	flag.StringVar(&commandLineParams.RunAddress, "a", "localhost:8080", "Base address to listen on")
	flag.StringVar(&commandLineParams.DatabaseDSN, "d", "postgres://postgres@localhost:5432/studio?sslmode=disable", "Database DSN")
	flag.StringVar(&commandLineParams.AdminLogin, "l", "admin", "Admin login")
	flag.StringVar(&commandLineParams.AdminPasswordHash, "p", "", "Admin password bcrypt hash")
	flag.StringVar(&commandLineParams.SecretKey, "s", "", "Secret key for auth tokens")
	flag.Parse()

	if params.RunAddress == "" {
		params.RunAddress = commandLineParams.RunAddress
	}
	if params.DatabaseDSN == "" {
		params.DatabaseDSN = commandLineParams.DatabaseDSN
	}
	if params.AdminLogin == "" {
		params.AdminLogin = commandLineParams.AdminLogin
	}
	if params.AdminPasswordHash == "" {
		params.AdminPasswordHash = commandLineParams.AdminPasswordHash
	}
	if params.SecretKey == "" {
		params.SecretKey = commandLineParams.SecretKey
	}

	params.Secret = []byte(params.SecretKey)

	return &params, nil
}
