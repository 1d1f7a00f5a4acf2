package config

// DB holds the database configuration settings.
type DB struct {
	Engine   string // postgres or sqlite
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	File     string // database file for the sqlite engine
}
