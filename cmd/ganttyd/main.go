package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gantty/internal/config"
	"gantty/internal/db"
	"gantty/internal/server"
)

func main() {
	cfgPath, err := config.DefaultConfigPath()
	if err != nil {
		cfgPath = ""
	}
	cfg := config.Default()
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	addr := flag.String("addr", cfg.ServerAddr, "listen address")
	dbPath := flag.String("db", cfg.DBPath, "path to the sqlite database (default: user data dir)")
	flag.Parse()

	path := *dbPath
	if path == "" {
		path, err = db.DefaultPath()
		if err != nil {
			log.Fatalf("resolve database path: %v", err)
		}
	}

	database, err := db.New(path)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	srv := server.NewServer(database)
	log.Printf("ganttyd listening on %s (db: %s)", *addr, path)
	if err := srv.Run(*addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
