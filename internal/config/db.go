package config

const (
	// EngineSQLite stores everything in a single local file (default).
	EngineSQLite = "sqlite"
	// EngineMySQL uses a MySQL/MariaDB server.
	EngineMySQL = "mysql"
	// EnginePostgres uses a PostgreSQL server.
	EnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	GormEngine string // sqlite, mysql or postgres
	Path       string // sqlite file path
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
}
