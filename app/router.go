// Package app wires the HTTP surface over the shared store and views.
package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the HTTP router over an already-constructed server.
func NewRouter(s *Server) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(s.log))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/health", s.Health)

	api := router.Group("/api")
	api.GET("/player/:playerId/games", s.GetPlayerGames)
	api.GET("/game/:gameId", s.GetGame)
	api.POST("/game/:gameId/select", s.SelectMove)
	api.POST("/game/:gameId/explain", s.ExplainMove)
	api.POST("/contact", s.Contact)

	return router
}
