package main

import (
	"net/http"
	"os"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/turf/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	Server := Server{
		GameServer: server.NewGameServer(server.DefaultConfig()),
	}
	go Server.GameServer.Loop()
	Server.routes()
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.Fatalln(http.ListenAndServe(":"+port, Server.router))
}
