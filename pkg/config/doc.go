// Package config provides configuration management for autocrud.
//
// Settings are read from $AUTOCRUD_CONFIG_PATH/autocrud.yml (default
// /etc/autocrud/config) and then overridden by environment variables.
// Every attribute remembers whether it came from the default, the file or
// the environment, which `autocrudctl configuration show` prints.
//
// # Environment Variables
//
//   - AUTOCRUD_MODELS_DIR: directory of published model definitions
//   - AUTOCRUD_TOKEN_TTL: token lifetime in seconds
//   - AUTOCRUD_JWT_SECRET (or JWT_SECRET): token signing secret
//   - AUTOCRUD_MOCK_AUTH: treat anonymous requests as Admin (development only)
//   - AUTOCRUD_DEFAULT_ROLE: role assumed for principals without one
//   - AUTOCRUD_OWNER_SCOPED_READS: restrict read and list to owned records
//   - AUTOCRUD_SEED_USERS, AUTOCRUD_SEED_PASSWORD: demo user seeding
//   - AUTOCRUD_API_LIST_LIMIT_MAX: list page size cap
//   - AUTOCRUD_CORS_ALLOWED_ORIGINS: comma separated origins
//   - AUTOCRUD_WATCH_MODELS: reload definitions on file changes
//
// Process settings that are not part of the configuration file:
//
//   - DATABASE_URL: database connection
//   - PORT, BIND_ADDRESS: server listen address
//   - AUTOCRUD_LOG_LEVEL: set to debug for SQL logging
package config
