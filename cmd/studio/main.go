package main

import (
	"github.com/botstudio/backend/internal/compress"
	"github.com/botstudio/backend/internal/config"
	"github.com/botstudio/backend/internal/handlers"
	"github.com/botstudio/backend/internal/router"
	"github.com/botstudio/backend/internal/store"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	documents, err := store.NewStore(conf.DatabaseDSN)
	if err != nil {
		panic(err)
	}
	defer documents.Close()

	handlerSet := handlers.NewHandlerSet(conf.Secret, conf.AuthCookieExpiresIn,
		conf.AdminLogin, conf.AdminPasswordHash, documents)

	r := router.NewRouter(conf, handlerSet, compress.RequestUngzipper{})

	err = r.ListenAndServe()
	if err != nil {
		panic(err)
	}

}
