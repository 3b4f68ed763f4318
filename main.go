package main

import (
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devfolio/portfolio-backend/api"
	"github.com/devfolio/portfolio-backend/auth"
	"github.com/devfolio/portfolio-backend/config"
	"github.com/devfolio/portfolio-backend/database"
	"github.com/devfolio/portfolio-backend/models"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	connStr := config.GetString(c, "DATABASE_URL", "")
	if connStr == "" {
		fmt.Println("DATABASE_URL is not set. Exiting...")
		os.Exit(1)
	}

	gormLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		fmt.Printf("Error migrating database schema: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	// If provisioning the admin account, run provisioning and exit
	if config.GetBool(c, "CREATE_ADMIN", false) {
		fmt.Println("Provisioning admin account...")
		if err := provisionAdmin(currentDB, c); err != nil {
			fmt.Printf("Error provisioning admin account: %v\n", err)
			os.Exit(1)
		}
		return
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// provisionAdmin creates the administrative account from ADMIN_* environment
// variables. The API's register route exists too; this is the out-of-band
// path used on fresh deployments.
func provisionAdmin(db database.Database, c map[string]string) error {
	username := config.GetString(c, "ADMIN_USERNAME", "admin")
	email := config.GetString(c, "ADMIN_EMAIL", "")
	password := config.GetString(c, "ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	existing, err := db.UserRepo().FindByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Info().Str("email", email).Msg("Admin already exists")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := db.UserRepo().Add(&admin); err != nil {
		return err
	}

	log.Info().Str("email", email).Str("id", admin.ID.String()).Msg("Admin created successfully")
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
