package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// FlagConfig binds command-line flags to a StructuredConfig. The config is
// filled in once fs has been parsed (by flag.FlagSet.Parse or by cobra after
// AddGoFlagSet).
type FlagConfig struct {
	cfg        StructuredConfig
	serverAddr NetAddress
}

// RegisterFlags registers every configuration flag on fs.
//
// Flags:
//
//	-a control API address in format [host]:[port]
//	-remote remote API base URL
//	-token remote API bearer token
//	-d database DSN
//	-driver database driver (sqlite3 or pgx)
//	-c/-config json file path with configs
//	-request-timeout remote request timeout (e.g., "30s", "1m")
//	-sync-interval background sync period
//	-fan-out secondary sync concurrency
//	-log-level zerolog level
func RegisterFlags(fs *flag.FlagSet) *FlagConfig {
	fc := &FlagConfig{}

	fs.Var(&fc.serverAddr, "a", "Control API address host:port")
	fs.StringVar(&fc.cfg.Adapter.HTTPAddress, "remote", "", "Remote API base URL")
	fs.StringVar(&fc.cfg.Adapter.Token, "token", "", "Remote API bearer token")
	fs.DurationVar(&fc.cfg.Adapter.RequestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 30s, 1m)")
	fs.StringVar(&fc.cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&fc.cfg.Storage.DB.Driver, "driver", "", "Database driver (sqlite3 or pgx)")
	fs.StringVar(&fc.cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&fc.cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&fc.cfg.Workers.SyncInterval, "sync-interval", 0, "Background sync interval")
	fs.IntVar(&fc.cfg.Workers.FanOutLimit, "fan-out", 0, "Concurrent secondary syncs per page")
	fs.StringVar(&fc.cfg.Log.Level, "log-level", "", "Log level")

	return fc
}

// Config returns the values collected from the parsed flags.
func (fc *FlagConfig) Config() *StructuredConfig {
	cfg := fc.cfg
	cfg.Server.HTTPAddress = fc.serverAddr.String()
	return &cfg
}

// String returns a canonical host:port string for a NetAddress.
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

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
