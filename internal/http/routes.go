package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup is a set of routes registered together.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

var (
	_ RouteGroup = (*Handler)(nil)
	_ RouteGroup = (*HealthHandler)(nil)
	_ RouteGroup = (*LogsHandler)(nil)
)
