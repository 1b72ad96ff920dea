package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-backend storage backend (file, sqlite, postgres)
//	-f data root for the file backend
//	-d database DSN (postgres backend)
//	-sqlite-dsn sqlite database file (sqlite backend)
//	-c/-config json file path with configs
//	-master-secret cipher master secret
//	-kdf-salt key-derivation salt
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-session-timeout session idle timeout (e.g., "30m")
//	-sweep-interval session sweep interval (e.g., "5m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var backend string
	var dataDir string
	var databaseDSN string
	var sqliteDSN string
	var jsonConfigPath string
	var masterSecret string
	var kdfSalt string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var sessionTimeout time.Duration
	var sweepInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&backend, "backend", "", "Storage backend: file, sqlite or postgres")
	flag.StringVar(&dataDir, "f", "", "Data root for the file backend")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&sqliteDSN, "sqlite-dsn", "", "SQLite database file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&masterSecret, "master-secret", "", "Cipher master secret")
	flag.StringVar(&kdfSalt, "kdf-salt", "", "Key-derivation salt")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&sessionTimeout, "session-timeout", 0, "Session idle timeout (e.g., 30m)")
	flag.DurationVar(&sweepInterval, "sweep-interval", 0, "Session sweep interval (e.g., 5m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			MasterSecret:  masterSecret,
			KDFSalt:       kdfSalt,
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			Backend: backend,
			DB: DB{
				DSN: databaseDSN,
			},
			SQLite: SQLite{
				DSN: sqliteDSN,
			},
			Files: Files{
				DataDir: dataDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Sessions: Sessions{
			Timeout:       sessionTimeout,
			SweepInterval: sweepInterval,
		},
		Classifier:   Classifier{},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
