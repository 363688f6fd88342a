// Package server provides the HTTP server for the autocrud API.
//
// This package wires the stores, the model registry, the permission
// evaluator and the token issuer behind a gorilla/mux router. Access logs
// come from gorilla/handlers and CORS is applied to every route.
//
// # Server Setup
//
//	srv := server.NewServer(cfg, db, "0.0.0.0", "4000")
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Router: HTTP request router
//   - DB: Database connection
//   - Registry, Publisher: model definitions and their publication
//   - Evaluator: role and ownership checks
//   - Tokens, AuthMiddleware: token issuing and Bearer validation
//   - RecordsStore, UsersStore, ModelFilesStore, HealthStore: persistence
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - / - status
//   - /auth/login - password login
//   - /admin/models - model definitions (Admin only)
//   - /api/{model} and /api/{model}/{id} - records of published models
package server
