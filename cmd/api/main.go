package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "rapport-backend/internal/adapter/http"
	"rapport-backend/internal/adapter/lock"
	mw "rapport-backend/internal/adapter/middleware"
	"rapport-backend/internal/adapter/repository/gormblob"
	"rapport-backend/internal/config"
	"rapport-backend/internal/infrastructure/cache"
	"rapport-backend/internal/infrastructure/db"
	"rapport-backend/internal/render"
	"rapport-backend/internal/schema"
	"rapport-backend/internal/tablestore"
	ucregistry "rapport-backend/internal/usecase/registry"
	ucreport "rapport-backend/internal/usecase/report"
	ucsignature "rapport-backend/internal/usecase/signature"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gormblob.AutoMigrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	tables := tablestore.New(
		gormblob.NewStore(gdb),
		lock.NewRedisLocker(rdb, cfg.LockTTL),
		schema.New(),
	)
	registryUC := ucregistry.NewUsecase(tables, cfg.BcryptCost)
	reportUC := ucreport.NewUsecase(tables)
	signatureUC := ucsignature.NewUsecase(tables, render.NewTextRenderer(), cfg.CompanyName)

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(registryUC, cfg.JWTSecret, cfg.SessionTTL)
	registryH := httpadp.NewRegistryHandler(registryUC)
	reportH := httpadp.NewReportHandler(reportUC)
	signatureH := httpadp.NewSignatureHandler(signatureUC, cfg.SignTokenTTL)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	e.GET("/health", h.Health)

	v1 := e.Group("/v1")
	v1.POST("/auth/login", authH.Login)
	// token-authorized; the signing link works without a session
	v1.POST("/signatures/sign", signatureH.Sign)

	authed := v1.Group("", mw.JWT(cfg.JWTSecret))
	authed.GET("/projects", registryH.ListProjects)
	authed.POST("/reports", reportH.Create)
	authed.GET("/reports/:id", reportH.Get)
	authed.GET("/reports/:id/history", reportH.History)
	authed.POST("/reports/:id/confirm", reportH.Confirm)
	authed.POST("/reports/:id/correct", reportH.Correct)
	authed.GET("/signatures/:week_id", signatureH.ListWeek)

	admin := authed.Group("", mw.RequireRole("admin"))
	admin.POST("/projects", registryH.CreateProject)
	admin.POST("/employees", registryH.CreateEmployee)
	admin.POST("/signatures/issue", signatureH.IssueToken)
	admin.POST("/signatures/invalidate", signatureH.Invalidate)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
