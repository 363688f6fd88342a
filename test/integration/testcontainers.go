package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/autocrud/pkg/audit"
	"github.com/doodlesbykumbi/autocrud/pkg/config"
	"github.com/doodlesbykumbi/autocrud/pkg/registry"
	"github.com/doodlesbykumbi/autocrud/pkg/server"
	"github.com/doodlesbykumbi/autocrud/pkg/server/endpoints"
	"github.com/doodlesbykumbi/autocrud/pkg/users"
)

const (
	testJWTSecret    = "integration-test-secret"
	testSeedPassword = "integration-password"
	testServerPort   = "18080"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB            *gorm.DB
	RawDB         *sql.DB
	Container     testcontainers.Container
	ServerURL     string
	DatabaseURL   string
	ModelsDir     string
	HTTPClient    *http.Client
	Cancel        context.CancelFunc
	ServerProcess *exec.Cmd
	InlineServer  *server.Server
}

// NewTestContext creates a new test context with PostgreSQL testcontainer.
// Modes:
//   - Binary mode (default): Set AUTOCRUD_BINARY to the path of the autocrudctl binary
//   - Inline mode: Set AUTOCRUD_INLINE=1 to run the server in-process (no binary needed)
func NewTestContext(ctx context.Context) (*TestContext, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	migrationsDir := filepath.Join(projectRoot, "db", "migrations")

	inlineMode := os.Getenv("AUTOCRUD_INLINE") == "1"
	binaryPath := os.Getenv("AUTOCRUD_BINARY")

	if !inlineMode && binaryPath == "" {
		return nil, fmt.Errorf("Either AUTOCRUD_BINARY or AUTOCRUD_INLINE=1 is required.\n\nBinary mode:\n  go build -o autocrudctl ./cmd/autocrudctl\n  INTEGRATION_TEST=1 AUTOCRUD_BINARY=$(pwd)/autocrudctl go test -v ./test/integration/...\n\nInline mode:\n  INTEGRATION_TEST=1 AUTOCRUD_INLINE=1 go test -v ./test/integration/...")
	}

	if !inlineMode {
		if _, err := os.Stat(binaryPath); err != nil {
			return nil, fmt.Errorf("AUTOCRUD_BINARY path does not exist: %s", binaryPath)
		}
		log.Printf("Using binary: %s", binaryPath)
	} else {
		log.Println("Using inline server mode")
	}

	modelsDir, err := os.MkdirTemp("", "autocrud-models-")
	if err != nil {
		return nil, fmt.Errorf("failed to create models directory: %w", err)
	}

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("autocrud_test"),
		tcpostgres.WithUsername("autocrud"),
		tcpostgres.WithPassword("autocrud"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		_ = os.RemoveAll(modelsDir)
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	cleanup := func() {
		_ = pgContainer.Terminate(ctx)
		_ = os.RemoveAll(modelsDir)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://autocrud:autocrud@%s:%s/autocrud_test?sslmode=disable", host, port.Port())

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	rawDB, err := db.DB()
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to get raw db: %w", err)
	}

	if err := runMigrations(rawDB, migrationsDir); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	serverURL := fmt.Sprintf("http://127.0.0.1:%s", testServerPort)

	var serverProcess *exec.Cmd
	var inlineServer *server.Server
	var cancel context.CancelFunc

	if inlineMode {
		inlineServer, cancel, err = startInlineServer(db, modelsDir, testServerPort)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to start inline server: %w", err)
		}
	} else {
		serverProcess, cancel, err = startBinary(binaryPath, connStr, modelsDir, testServerPort)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to start server binary: %w", err)
		}
	}

	if err := waitForServer(serverURL, 30*time.Second); err != nil {
		cancel()
		if serverProcess != nil && serverProcess.Process != nil {
			_ = serverProcess.Process.Kill()
		}
		cleanup()
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return &TestContext{
		DB:            db,
		RawDB:         rawDB,
		Container:     pgContainer,
		ServerURL:     serverURL,
		DatabaseURL:   connStr,
		ModelsDir:     modelsDir,
		HTTPClient:    &http.Client{Timeout: 10 * time.Second},
		Cancel:        cancel,
		ServerProcess: serverProcess,
		InlineServer:  inlineServer,
	}, nil
}

// startInlineServer starts the server in-process (no binary needed)
func startInlineServer(db *gorm.DB, modelsDir, port string) (*server.Server, context.CancelFunc, error) {
	audit.SetEnabled(false)

	cfg := &config.AutocrudConfig{
		ModelsDir:          modelsDir,
		TokenTTL:           3600,
		JWTSecret:          testJWTSecret,
		DefaultRole:        "Viewer",
		SeedUsers:          true,
		SeedPassword:       testSeedPassword,
		APIListLimitMax:    100,
		CORSAllowedOrigins: []string{"*"},
	}

	s := server.NewServer(cfg, db, "127.0.0.1", port)
	if _, err := users.Seed(s.UsersStore, []byte(testSeedPassword)); err != nil {
		return nil, nil, err
	}
	if _, err := registry.Bootstrap(s.Registry, s.ModelsDir, s.ModelFilesStore); err != nil {
		return nil, nil, err
	}
	endpoints.RegisterAll(s)

	listener, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", port))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener on port %s: %w", port, err)
	}

	go func() {
		_ = s.StartWithListener(listener)
	}()

	cancel := func() {
		ctx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = s.Shutdown(ctx)
	}
	return s, cancel, nil
}

// startBinary starts the autocrudctl server binary
func startBinary(binaryPath, dbURL, modelsDir, port string) (*exec.Cmd, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	// Use --no-migrate since we already ran migrations in the test setup
	cmd := exec.CommandContext(ctx, binaryPath, "server", "--no-migrate", "-b", "127.0.0.1", "-p", port)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"AUTOCRUD_JWT_SECRET="+testJWTSecret,
		"AUTOCRUD_MODELS_DIR="+modelsDir,
		"AUTOCRUD_SEED_USERS=true",
		"AUTOCRUD_SEED_PASSWORD="+testSeedPassword,
		"AUTOCRUD_AUDIT_ENABLED=false",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to start binary: %w", err)
	}

	return cmd, cancel, nil
}

// waitForServer polls the server until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Cancel != nil {
		tc.Cancel()
	}
	if tc.ServerProcess != nil && tc.ServerProcess.Process != nil {
		_ = tc.ServerProcess.Process.Kill()
		_ = tc.ServerProcess.Wait()
	}
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
	if tc.ModelsDir != "" {
		_ = os.RemoveAll(tc.ModelsDir)
	}
}

// findProjectRoot locates the project root directory
func findProjectRoot() (string, error) {
	paths := []string{
		"../..",
		"..",
		".",
	}

	for _, p := range paths {
		goMod := filepath.Join(p, "go.mod")
		if _, err := os.Stat(goMod); err == nil {
			return filepath.Abs(p)
		}
	}

	return "", fmt.Errorf("project root not found (looking for go.mod)")
}

// runMigrations applies the up migrations in version order
func runMigrations(db *sql.DB, migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("migration %s: %w", filepath.Base(file), err)
		}
	}

	return nil
}
