package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"snake-arena/constants"
	"snake-arena/server"
)

func main() {
	cfg := LoadConfig()

	analytics := server.NewAnalytics(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer analytics.Close()
	hub := server.NewHub(analytics)

	r := gin.Default()
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET(constants.SOCKET_PATH, func(c *gin.Context) {
		hub.HandleWebSocket(c.Writer, c.Request)
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	log.Printf("snaked listening on %s, websocket endpoint %s", srv.Addr, constants.SOCKET_PATH)
	log.Fatal(srv.ListenAndServe())
}
