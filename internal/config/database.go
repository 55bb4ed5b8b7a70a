package config

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig selects the storage driver and its connection string.
type DatabaseConfig struct {
	DriverName string `yaml:"driver"`
	DSN        string `yaml:"dsn"`
}

// Driver returns DriverSQLite or DriverPostgres.
func (d *DatabaseConfig) Driver() string {
	return d.DriverName
}

// ConnString returns the sqlite path or postgres URL.
func (d *DatabaseConfig) ConnString() string {
	return d.DSN
}
