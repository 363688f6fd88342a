// Command autocrudctl runs the autocrud server, a CRUD service for data
// models defined at runtime with role-based access control.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: storage interfaces and their gorm implementations
//   - pkg/definition: model definitions, parsing and validation
//   - pkg/registry: draft and published models, publishing, the models directory
//   - pkg/provision: per-model table creation
//   - pkg/rbac: role and ownership checks
//   - pkg/token, pkg/authenticator: login and Bearer tokens
//   - pkg/audit: audit logging
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Run database migrations
//	autocrudctl db migrate
//
//	# Create the demo users
//	autocrudctl user seed
//
//	# Start the server
//	export AUTOCRUD_JWT_SECRET=$(openssl rand -hex 32)
//	autocrudctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - AUTOCRUD_JWT_SECRET (or JWT_SECRET): token signing secret
//   - AUTOCRUD_CONFIG_PATH: directory holding autocrud.yml
//   - AUTOCRUD_LOG_LEVEL: set to "debug" for SQL logging
//   - AUTOCRUD_AUDIT_ENABLED: set to "false" to silence audit events
//   - AUDIT_DATABASE_URL: persist audit events to this database
//   - PORT: Server port (default: 4000)
//   - BIND_ADDRESS: Server bind address (default: 0.0.0.0)
package main
