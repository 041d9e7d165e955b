package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employeemanagement/auth"
	"employeemanagement/config"
	"employeemanagement/db"
	"employeemanagement/db/dynamo"
	"employeemanagement/db/mongo"
	"employeemanagement/db/postgres"
	"employeemanagement/db/sqlite"
	"employeemanagement/handlers"
	"employeemanagement/repository"
	"employeemanagement/routes"
	"employeemanagement/services"
	"employeemanagement/utils"
)

// openStore connects the configured database and returns its employee repository.
func openStore(ctx context.Context, cfg *config.Config) (db.DB, repository.EmployeeRepository, error) {
	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, pg.Conn, db.Postgres); err != nil {
			pg.Disconnect()
			return nil, nil, err
		}
		return pg, repository.NewSQLEmployeeRepo(pg.Conn), nil

	case db.SQLite:
		lite := sqlite.NewSQLiteDB(cfg.SQLitePath)
		if err := lite.Connect(); err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, lite.Conn, db.SQLite); err != nil {
			lite.Disconnect()
			return nil, nil, err
		}
		return lite, repository.NewSQLEmployeeRepo(lite.Conn), nil

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDatabase)
		if err := mg.Connect(); err != nil {
			return nil, nil, err
		}
		return mg, repository.NewMongoEmployeeRepo(mg.Client, mg.Database), nil

	case db.DynamoDB:
		dd := dynamo.NewDynamoDB(cfg.DynamoTable, cfg.AWSRegion, cfg.DynamoEndpoint)
		if err := dd.Connect(); err != nil {
			return nil, nil, err
		}
		return dd, repository.NewDynamoEmployeeRepo(dd.Client, dd.Table), nil
	}
	return nil, nil, errors.New("DB_TYPE not supported: " + cfg.DBType)
}

func buildAuthenticator(cfg *config.Config) (*auth.Authenticator, error) {
	hasher, err := auth.NewHasher(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	parsed, err := cfg.Seeds()
	if err != nil {
		return nil, err
	}
	seeds := make([]auth.Seed, 0, len(parsed))
	for _, s := range parsed {
		seeds = append(seeds, auth.Seed{Username: s.Username, Password: s.Password, Role: auth.Role(s.Role)})
	}
	store, err := auth.NewCredentialStore(hasher, seeds)
	if err != nil {
		return nil, err
	}
	return auth.NewAuthenticator(store, hasher)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.Printf("starting with %s", cfg)

	ctx := context.Background()

	conn, repo, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer conn.Disconnect()

	authenticator, err := buildAuthenticator(cfg)
	if err != nil {
		log.Fatalf("credentials: %v", err)
	}

	sessions := &auth.SessionManager{Store: auth.NewSessionStore(cfg.SessionTTL), Secure: cfg.CookieSecure}
	csrf := &auth.CSRF{Enabled: cfg.CSRFEnabled, Secure: cfg.CookieSecure}
	if !cfg.CSRFEnabled {
		log.Println("CSRF protection is disabled")
	}

	employeeService := services.NewEmployeeService(repo)

	exportHandler := &handlers.ExportHandler{Service: employeeService}
	if cfg.R2.Enabled() {
		uploader, err := utils.NewR2Uploader(ctx, cfg.R2)
		if err != nil {
			log.Fatalf("r2: %v", err)
		}
		exportHandler.Uploader = uploader
	}

	handler := routes.SetupRoutes(cfg.CORSOrigin,
		&handlers.Gate{Policy: auth.DefaultPolicy(), Sessions: sessions, CSRF: csrf},
		&handlers.AuthHandler{Auth: authenticator, Sessions: sessions, CSRF: csrf, SuccessPath: cfg.LoginSuccessPath},
		&handlers.EmployeeHandler{Service: employeeService},
		exportHandler,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	log.Println("server stopped")
}
