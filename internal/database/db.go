package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATE/DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema lists the DDL executed at startup.  Every statement is
// idempotent so the process can be restarted against an existing
// database without migrations.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email         VARCHAR(255) NOT NULL,
		username      VARCHAR(64)  NOT NULL,
		first_name    VARCHAR(64)  NOT NULL DEFAULT '',
		last_name     VARCHAR(64)  NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(16)  NOT NULL DEFAULT 'customer',
		created_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email),
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS messages (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email      VARCHAR(255) NOT NULL,
		body       TEXT         NOT NULL,
		created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS parts (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name        VARCHAR(255) NOT NULL,
		amount_left INT          NOT NULL DEFAULT 0,
		engine_type VARCHAR(64)  NOT NULL DEFAULT '',
		price_cents BIGINT       NOT NULL DEFAULT 0,
		nr_oem      VARCHAR(64)  NOT NULL DEFAULT '',
		qr_code     VARCHAR(64)  NOT NULL DEFAULT '',
		created_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_parts_name (name)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS repairs (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		car_name    VARCHAR(255) NOT NULL,
		start_date  DATE         NOT NULL,
		end_date    DATE         NOT NULL,
		active      TINYINT(1)   NOT NULL DEFAULT 0,
		customer_id BIGINT UNSIGNED NOT NULL,
		money_cents BIGINT       NOT NULL DEFAULT 0,
		created_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_repairs_customer (customer_id),
		CONSTRAINT fk_repairs_customer FOREIGN KEY (customer_id) REFERENCES users (id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS parts_in_repair (
		part_id   BIGINT UNSIGNED NOT NULL,
		repair_id BIGINT UNSIGNED NOT NULL,
		quantity  INT UNSIGNED    NOT NULL DEFAULT 0,
		PRIMARY KEY (part_id, repair_id),
		KEY idx_pir_repair (repair_id),
		CONSTRAINT fk_pir_part FOREIGN KEY (part_id) REFERENCES parts (id) ON DELETE CASCADE,
		CONSTRAINT fk_pir_repair FOREIGN KEY (repair_id) REFERENCES repairs (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

// EnsureSchema creates all application tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
