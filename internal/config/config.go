package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile = "data/config.yaml"
	configPathEnvKey  = "CONFIG_PATH"
)

type config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Auth     AuthConfig     `yaml:"auth"`
}

// Service holds the loaded configuration.
type Service struct {
	config config
}

// New loads .env (if present), the YAML config file and environment overrides,
// in that order of increasing precedence.
func New() (*Service, error) {
	_ = godotenv.Load()

	path := os.Getenv(configPathEnvKey)
	if path == "" {
		path = defaultConfigFile
	}
	return Load(path)
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (*Service, error) {
	s := &Service{config: defaults()}

	rawYAML, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err = yaml.Unmarshal(rawYAML, &s.config); err != nil {
			return nil, errors.Wrap(err, "parsing yaml")
		}
	case !os.IsNotExist(err):
		return nil, errors.Wrap(err, "reading config file")
	}

	s.applyEnv()

	if err = s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func defaults() config {
	return config{
		Server: ServerConfig{
			ListenPort: "8080",
			Origins:    []string{"*"},
		},
		Database: DatabaseConfig{
			DriverName: DriverSQLite,
			DSN:        "wallet.db",
		},
		Auth: AuthConfig{
			Strategy: TokenStrategyShared,
		},
	}
}

func (s *Service) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		s.config.Server.ListenPort = v
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		s.config.Server.Origins = splitList(v)
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		s.config.Database.DriverName = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		s.config.Database.DSN = v
	} else if v := os.Getenv("DB_PATH"); v != "" {
		s.config.Database.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		s.config.Cache.DriverName = CacheRedis
		s.config.Cache.RedisAddress = v
	}
	if v := os.Getenv("MEMCACHED_HOSTS"); v != "" {
		s.config.Cache.DriverName = CacheMemcached
		s.config.Cache.MemcachedHosts = splitList(v)
	}
	if v := os.Getenv("TOKEN_STRATEGY"); v != "" {
		s.config.Auth.Strategy = v
	}
}

func (s *Service) validate() error {
	switch s.config.Database.DriverName {
	case DriverSQLite, DriverPostgres:
	default:
		return errors.Errorf("unknown database driver %q", s.config.Database.DriverName)
	}
	switch s.config.Cache.DriverName {
	case "", CacheRedis, CacheMemcached:
	default:
		return errors.Errorf("unknown cache driver %q", s.config.Cache.DriverName)
	}
	switch s.config.Auth.Strategy {
	case TokenStrategyShared, TokenStrategyPerLogin:
	default:
		return errors.Errorf("unknown token strategy %q", s.config.Auth.Strategy)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimRight(strings.TrimSpace(p), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Server returns the HTTP listener settings.
func (s *Service) Server() *ServerConfig {
	return &s.config.Server
}

// Database returns the storage settings.
func (s *Service) Database() *DatabaseConfig {
	return &s.config.Database
}

// Cache returns the session cache settings.
func (s *Service) Cache() *CacheConfig {
	return &s.config.Cache
}

// Auth returns the token issuance settings.
func (s *Service) Auth() *AuthConfig {
	return &s.config.Auth
}
