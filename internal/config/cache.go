package config

const (
	CacheRedis     = "redis"
	CacheMemcached = "memcached"
)

// CacheConfig configures the optional session cache. An empty driver disables it.
type CacheConfig struct {
	DriverName     string   `yaml:"driver"`
	RedisAddress   string   `yaml:"redis-addr"`
	MemcachedHosts []string `yaml:"memcached-hosts"`
	TTLSeconds     int64    `yaml:"ttl-seconds"`
}

// Driver returns CacheRedis, CacheMemcached or "".
func (c *CacheConfig) Driver() string {
	return c.DriverName
}

// Addr returns the redis address.
func (c *CacheConfig) Addr() string {
	return c.RedisAddress
}

// Hosts returns the memcached servers.
func (c *CacheConfig) Hosts() []string {
	return c.MemcachedHosts
}

// TTL returns the cache lifetime in seconds.
func (c *CacheConfig) TTL() int64 {
	return c.TTLSeconds
}
