package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/amontoya/webawards/internal/app"
	"github.com/amontoya/webawards/internal/config"
	"github.com/amontoya/webawards/internal/logger"
)

var version = "dev"

func main() {
	addr := flag.String("addr", "", "Listen address (overrides WEBAWARDS_ADDR)")
	dbPath := flag.String("db", "", "SQLite database path (overrides WEBAWARDS_DB)")
	logLevel := flag.String("loglevel", "", "Log level: debug, info, warn, error (overrides WEBAWARDS_LOG_LEVEL)")
	httpLog := flag.Bool("httplog", false, "Log every HTTP request")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `webawards - voting backend for the student project showcase

Usage:
  webawards [options]

Options:
  -addr string     Listen address (default ":8080")
  -db string       SQLite database path (default "webawards.db")
  -loglevel str    Log level: debug, info, warn, error (default "info")
  -httplog         Log every HTTP request
  -version         Show version and exit
  -help            Show this help message

Environment:
  WEBAWARDS_ADDR         Listen address
  WEBAWARDS_DB           SQLite database path
  WEBAWARDS_LOG_LEVEL    Log level
  WEBAWARDS_JWT_SECRET   Token signing secret (required)
  WEBAWARDS_TOKEN_TTL    Token lifetime (default 168h)

Examples:
  WEBAWARDS_JWT_SECRET=s3cret webawards
  WEBAWARDS_JWT_SECRET=s3cret webawards -addr :9000 -db /data/awards.db
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("webawards %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel))
	if *httpLog {
		appLog.EnableHTTPLogging()
	}

	a, err := app.New(appLog, cfg)
	if err != nil {
		log.Fatal("Failed to initialize application: ", err)
	}
	defer a.Close()

	if err := a.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
