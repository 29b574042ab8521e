package database

import (
	"context"
	"database/sql"
)

// schema lists the table definitions in dependency order. MySQL applies
// them idempotently on startup so a fresh database is usable without a
// separate migration step.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS user (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS userRole (
		userId INT NOT NULL,
		role VARCHAR(255) NOT NULL,
		objectId INT NOT NULL DEFAULT 0,
		INDEX (userId),
		INDEX (objectId)
	)`,
	`CREATE TABLE IF NOT EXISTS auth (
		token VARCHAR(512) PRIMARY KEY,
		userId INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS menu (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		image VARCHAR(1024) NOT NULL,
		price DECIMAL(10,8) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS franchise (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS store (
		id INT AUTO_INCREMENT PRIMARY KEY,
		franchiseId INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		INDEX (franchiseId)
	)`,
	`CREATE TABLE IF NOT EXISTS dinerOrder (
		id INT AUTO_INCREMENT PRIMARY KEY,
		dinerId INT NOT NULL,
		franchiseId INT NOT NULL,
		storeId INT NOT NULL,
		date DATETIME NOT NULL,
		INDEX (dinerId)
	)`,
	`CREATE TABLE IF NOT EXISTS orderItem (
		id INT AUTO_INCREMENT PRIMARY KEY,
		orderId INT NOT NULL,
		menuId INT NOT NULL,
		description VARCHAR(255) NOT NULL,
		price DECIMAL(10,8) NOT NULL,
		INDEX (orderId)
	)`,
}

// Bootstrap creates any missing tables.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
