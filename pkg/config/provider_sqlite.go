package config

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteSchema creates the tables read by SQLiteProvider
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS configs (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS dataset_configs (
	config_id INTEGER NOT NULL REFERENCES configs(id),
	path      TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS controller_configs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	config_id   INTEGER NOT NULL REFERENCES configs(id),
	type        TEXT NOT NULL,
	cert        TEXT,
	key         TEXT,
	port        INTEGER,
	listen_addr TEXT,
	page_title  TEXT
);
CREATE TABLE IF NOT EXISTS logging_configs (
	config_id    INTEGER NOT NULL REFERENCES configs(id),
	file         TEXT,
	max_size_mb  INTEGER,
	max_backups  INTEGER,
	max_age_days INTEGER
);
`

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	dataset, err := s.GetDataset()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset config: %w", err)
	}
	config.Dataset = *dataset

	controllers, err := s.GetControllers()
	if err != nil {
		return nil, fmt.Errorf("failed to load controllers: %w", err)
	}
	config.Controllers = controllers

	logging, err := s.GetLogging()
	if err != nil {
		return nil, fmt.Errorf("failed to load logging config: %w", err)
	}
	config.Logging = *logging

	config.ApplyDefaults()
	return config, nil
}

// GetDataset returns the dataset configuration from the database
func (s *SQLiteProvider) GetDataset() (*DatasetData, error) {
	query := `
		SELECT path FROM dataset_configs
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
		LIMIT 1
	`

	var dataset DatasetData
	err := s.db.QueryRow(query).Scan(&dataset.Path)
	if errors.Is(err, sql.ErrNoRows) {
		return &dataset, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset config: %w", err)
	}
	return &dataset, nil
}

// GetControllers returns controller configurations from the database
func (s *SQLiteProvider) GetControllers() ([]ControllerData, error) {
	query := `
		SELECT type, cert, key, port, listen_addr, page_title
		FROM controller_configs
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
		ORDER BY id
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query controllers: %w", err)
	}
	defer rows.Close()

	var controllers []ControllerData
	for rows.Next() {
		var controller ControllerData
		var cert, key, listenAddr, pageTitle sql.NullString
		var port sql.NullInt64

		if err := rows.Scan(&controller.Type, &cert, &key, &port, &listenAddr, &pageTitle); err != nil {
			return nil, fmt.Errorf("failed to scan controller row: %w", err)
		}

		rc := &RESTServerData{}
		if cert.Valid {
			rc.Cert = cert.String
		}
		if key.Valid {
			rc.Key = key.String
		}
		if port.Valid {
			rc.Port = int(port.Int64)
		}
		if listenAddr.Valid {
			rc.ListenAddr = listenAddr.String
		}
		if pageTitle.Valid {
			rc.PageTitle = pageTitle.String
		}
		controller.RESTServer = rc

		controllers = append(controllers, controller)
	}

	return controllers, rows.Err()
}

// GetLogging returns the logging configuration from the database
func (s *SQLiteProvider) GetLogging() (*LoggingData, error) {
	query := `
		SELECT file, max_size_mb, max_backups, max_age_days FROM logging_configs
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
		LIMIT 1
	`

	var logging LoggingData
	var file sql.NullString
	var maxSize, maxBackups, maxAge sql.NullInt64

	err := s.db.QueryRow(query).Scan(&file, &maxSize, &maxBackups, &maxAge)
	if errors.Is(err, sql.ErrNoRows) {
		return &logging, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query logging config: %w", err)
	}

	if file.Valid {
		logging.File = file.String
	}
	if maxSize.Valid {
		logging.MaxSizeMB = int(maxSize.Int64)
	}
	if maxBackups.Valid {
		logging.MaxBackups = int(maxBackups.Int64)
	}
	if maxAge.Valid {
		logging.MaxAgeDays = int(maxAge.Int64)
	}
	return &logging, nil
}

// IsReadOnly returns true; the dashboard never writes its configuration
func (s *SQLiteProvider) IsReadOnly() bool {
	return true
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// WriteSQLite creates the schema in db and stores cfg as the default configuration,
// replacing any default configuration already present
func WriteSQLite(db *sql.DB, cfg *ConfigData) error {
	if _, err := db.Exec(SQLiteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var configID int64
	err = tx.QueryRow(`SELECT id FROM configs WHERE name = 'default'`).Scan(&configID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.Exec(`INSERT INTO configs (name) VALUES ('default')`)
		if err != nil {
			return fmt.Errorf("failed to insert config: %w", err)
		}
		if configID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read config id: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to query config: %w", err)
	default:
		for _, table := range []string{"dataset_configs", "controller_configs", "logging_configs"} {
			if _, err := tx.Exec("DELETE FROM "+table+" WHERE config_id = ?", configID); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
	}

	if _, err := tx.Exec(`INSERT INTO dataset_configs (config_id, path) VALUES (?, ?)`, configID, cfg.Dataset.Path); err != nil {
		return fmt.Errorf("failed to insert dataset config: %w", err)
	}

	for _, con := range cfg.Controllers {
		rc := RESTServerData{}
		if con.RESTServer != nil {
			rc = *con.RESTServer
		}
		_, err := tx.Exec(`
			INSERT INTO controller_configs (config_id, type, cert, key, port, listen_addr, page_title)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			configID, con.Type, rc.Cert, rc.Key, rc.Port, rc.ListenAddr, rc.PageTitle)
		if err != nil {
			return fmt.Errorf("failed to insert controller %s: %w", con.Type, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO logging_configs (config_id, file, max_size_mb, max_backups, max_age_days)
		VALUES (?, ?, ?, ?, ?)`,
		configID, cfg.Logging.File, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups, cfg.Logging.MaxAgeDays)
	if err != nil {
		return fmt.Errorf("failed to insert logging config: %w", err)
	}

	return tx.Commit()
}
