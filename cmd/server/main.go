package main

import (
	"flag"
	"log"
	"net/http"

	"idz2_opt/internal/server"
)

func main() {
	addr := flag.String("addr", ":8080", "адрес для прослушивания")
	flag.Parse()

	router := server.NewRouter()
	log.Println("Сервер запущен на http://localhost" + *addr)
	log.Println("Static files served from:", "static")
	log.Fatal(http.ListenAndServe(*addr, router))
}
