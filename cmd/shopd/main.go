package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/goliatone/go-shop/auth"
	"github.com/goliatone/go-shop/catalog"
	"github.com/goliatone/go-shop/rest"
)

type appConfig struct {
	Port             string        `env:"PORT" envDefault:"3000"`
	DSN              string        `env:"DATABASE_DSN" envDefault:"file:shop.db?cache=shared&mode=rwc"`
	UploadDir        string        `env:"UPLOAD_DIR" envDefault:"uploads"`
	AccessSecret     string        `env:"ACCESS_TOKEN_SECRET,required"`
	RefreshSecret    string        `env:"REFRESH_TOKEN_SECRET,required"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL  time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	Issuer           string        `env:"TOKEN_ISSUER" envDefault:"go-shop"`
	Audience         []string      `env:"TOKEN_AUDIENCE" envDefault:"go-shop"`
	SecureCookies    bool          `env:"SECURE_COOKIES" envDefault:"false"`
	AllowOrigins     string        `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:5173"`
	AllowCredentials bool          `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
}

func (c appConfig) GetAccessSigningKey() string       { return c.AccessSecret }
func (c appConfig) GetRefreshSigningKey() string      { return c.RefreshSecret }
func (c appConfig) GetAccessTokenTTL() time.Duration  { return c.AccessTokenTTL }
func (c appConfig) GetRefreshTokenTTL() time.Duration { return c.RefreshTokenTTL }
func (c appConfig) GetIssuer() string                 { return c.Issuer }
func (c appConfig) GetAudience() []string             { return c.Audience }
func (c appConfig) GetSecureCookies() bool            { return c.SecureCookies }

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("shopd"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(goerrors.ToSlogAttributes),
	)
	logger := lgr.GetLogger("app")

	cfg := appConfig{}
	if err := env.Parse(&cfg); err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.DSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Error("failed to prepare upload dir", "error", err)
		os.Exit(1)
	}

	users := auth.NewUsersRepository(db)
	repos := catalog.NewRepositoryManager(db)

	tokens := auth.NewTokenService(cfg, lgr.GetLogger("tokens"))
	carriers := auth.NewCarriers(cfg)
	auther := auth.NewAuthenticator(users, tokens).WithLogger(lgr.GetLogger("auth"))

	app := fiber.New(fiber.Config{
		AppName:      "go-shop",
		ErrorHandler: rest.NewErrorHandler(lgr.GetLogger("http")),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowCredentials: cfg.AllowCredentials,
	}))

	rest.RegisterRoutes(app, rest.Deps{
		Auther:    auther,
		Tokens:    tokens,
		Carriers:  carriers,
		Catalog:   repos,
		Logger:    lgr.GetLogger("http"),
		UploadDir: cfg.UploadDir,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("listening", "port", cfg.Port)

	waitExitSignal()

	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

func openDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	models := []any{
		(*auth.User)(nil),
		(*catalog.Category)(nil),
		(*catalog.Product)(nil),
		(*catalog.Order)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
