package config

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	ListenPort string   `yaml:"port"`
	Origins    []string `yaml:"cors-origins"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return ":" + s.ListenPort
}

// CORSOrigins returns the allowed origins.
func (s *ServerConfig) CORSOrigins() []string {
	return s.Origins
}
