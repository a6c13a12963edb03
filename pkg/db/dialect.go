package db

const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)
