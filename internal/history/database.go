package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"apv/internal/config"
	"apv/internal/domain"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Archive stores finished evaluation runs in a MySQL database so verdicts
// across many agent runs can be compared later.
type Archive struct {
	config *config.Config
}

// NewArchive creates a new Archive
func NewArchive(cfg *config.Config) *Archive {
	return &Archive{config: cfg}
}

// Run is one archived evaluation.
type Run struct {
	ID            int64
	Timestamp     string
	RepoPath      string
	PreErrors     int
	PostErrors    int
	Resolved      bool
	ChangeApplied bool
}

// connect opens a connection using DB_* environment variables, loading a
// .env file from the target repo first when one exists.
func (a *Archive) connect() (*sql.DB, error) {
	envPath := filepath.Join(a.config.RepoPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "127.0.0.1"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "3306"
	}
	dbUser := os.Getenv("DB_USERNAME")
	if dbUser == "" {
		dbUser = "root"
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_DATABASE")
	if dbName == "" {
		dbName = "apv"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/", dbUser, dbPassword, dbHost, dbPort)
	server, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := server.Ping(); err != nil {
		server.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}
	if _, err := server.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)); err != nil {
		server.Close()
		return nil, fmt.Errorf("failed to create database %s: %w", dbName, err)
	}
	server.Close()

	db, err := sql.Open("mysql", dsn+dbName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dbName, err)
	}
	if err := a.ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (a *Archive) ensureSchema(db *sql.DB) error {
	query := `CREATE TABLE IF NOT EXISTS evaluations (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		timestamp VARCHAR(64) NOT NULL,
		repo_path VARCHAR(512) NOT NULL,
		pre_errors INT NOT NULL,
		post_errors INT NOT NULL,
		resolved TINYINT(1) NOT NULL,
		change_applied TINYINT(1) NOT NULL
	)`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create evaluations table: %w", err)
	}
	return nil
}

// Store inserts one finished evaluation into the archive.
func (a *Archive) Store(record domain.EvaluationRecord) error {
	db, err := a.connect()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(
		`INSERT INTO evaluations
			(timestamp, repo_path, pre_errors, post_errors, resolved, change_applied)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.Timestamp,
		a.config.RepoPath,
		record.Pre.Final.ErrorCount(),
		record.Post.Final.ErrorCount(),
		record.Resolved,
		record.ChangeApplied,
	)
	if err != nil {
		return fmt.Errorf("failed to insert evaluation: %w", err)
	}
	return nil
}

// List returns the most recent archived evaluations, newest first.
func (a *Archive) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	db, err := a.connect()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(
		`SELECT id, timestamp, repo_path, pre_errors, post_errors, resolved, change_applied
		 FROM evaluations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.RepoPath, &r.PreErrors, &r.PostErrors, &r.Resolved, &r.ChangeApplied); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation row: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
