package endpoints

import "github.com/doodlesbykumbi/autocrud/pkg/server"

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterAuthEndpoints(srv)
	RegisterModelsEndpoints(srv)
	RegisterRecordsEndpoints(srv)
}
