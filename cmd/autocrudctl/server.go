package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/autocrud/pkg/db"
	"github.com/doodlesbykumbi/autocrud/pkg/registry"
	"github.com/doodlesbykumbi/autocrud/pkg/server"
	"github.com/doodlesbykumbi/autocrud/pkg/server/endpoints"
	"github.com/doodlesbykumbi/autocrud/pkg/users"
)

const shutdownTimeout = 10 * time.Second

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "4000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 4000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the autocrud application server",
	Long: `Run the autocrud application server

To run the server requires DATABASE_URL and a token secret (jwt_secret in
autocrud.yml, AUTOCRUD_JWT_SECRET or JWT_SECRET).

By default, database migrations are run on startup. Use --no-migrate to skip.
Published models are loaded from the models directory and the model_files
table before the server starts listening.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fail("%v", err)
		}
		if mockAuth, _ := cmd.Flags().GetBool("mock-auth"); mockAuth {
			cfg.MockAuth = true
		}
		if watch, _ := cmd.Flags().GetBool("watch-models"); watch {
			cfg.WatchModels = true
		}
		if err := cfg.ValidateServer(); err != nil {
			fail("%v", err)
		}

		if db.URL() == "" {
			fail("DATABASE_URL environment variable is required")
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fail("Migration failed: %v", err)
			}
		}

		database, err := connect()
		if err != nil {
			fail("Unable to connect to DB: %v", err)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(cfg, database, host, port)

		if cfg.MockAuth {
			log.Println("WARNING: mock authentication is enabled. Requests without a token run as an Admin. Never enable this in production.")
		}

		if cfg.SeedUsers {
			n, err := users.Seed(s.UsersStore, []byte(cfg.SeedPassword))
			if err != nil {
				fail("Failed to seed users: %v", err)
			}
			if n > 0 {
				log.Printf("Seeded %d users", n)
			}
		}

		n, err := registry.Bootstrap(s.Registry, s.ModelsDir, s.ModelFilesStore)
		if err != nil {
			fail("Failed to load models: %v", err)
		}
		log.Printf("Loaded %d published models", n)

		endpoints.RegisterAll(s)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.WatchModels {
			go func() {
				if err := registry.Watch(ctx, s.ModelsDir, s.Publisher); err != nil {
					log.Printf("Model watcher stopped: %v", err)
				}
			}()
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Running server at http://%s...\n", s.Addr())
			errCh <- s.Start()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err)
			}
		case <-ctx.Done():
			log.Println("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := s.Shutdown(shutdownCtx); err != nil {
				log.Printf("Shutdown error: %v", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
	serverCmd.Flags().Bool("mock-auth", false, "treat requests without a token as an Admin (development only)")
	serverCmd.Flags().Bool("watch-models", false, "load definition files as they change in the models directory")
}
