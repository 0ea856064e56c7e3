package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Creates the schema and the stored procedures the API calls. The DSN must
// carry multiStatements=true so the table block runs as one script.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	tables := `
	CREATE TABLE IF NOT EXISTS users (
	  id BIGINT NOT NULL AUTO_INCREMENT,
	  name VARCHAR(50) NOT NULL,
	  surname VARCHAR(50) NOT NULL,
	  email VARCHAR(100) NOT NULL,
	  password_hash VARCHAR(255) NOT NULL,
	  role VARCHAR(20) NOT NULL DEFAULT 'User',
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS payment_notifications (
	  id BIGINT NOT NULL AUTO_INCREMENT,
	  occurred_at DATETIME(3) NOT NULL,
	  transaction_id VARCHAR(255) NOT NULL,
	  status VARCHAR(32) NOT NULL,
	  amount DECIMAL(18,2) NOT NULL,
	  bank VARCHAR(50) NOT NULL,
	  payment_method VARCHAR(32) NOT NULL,
	  user_id BIGINT NOT NULL,
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_payment_notifications_transaction_id (transaction_id),
	  KEY ix_payment_notifications_user_id (user_id),
	  CONSTRAINT ck_payment_notifications_amount CHECK (amount > 0),
	  CONSTRAINT fk_payment_notifications_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := sqlDB.Exec(tables); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}
	log.Println("✓ users table created successfully")
	log.Println("✓ payment_notifications table created successfully")

	// Procedures are single statements, so no DELIMITER dance is needed.
	procedures := []struct {
		name string
		body string
	}{
		{
			"sp_insert_payment_notification",
			`CREATE PROCEDURE sp_insert_payment_notification(
			  IN p_occurred_at DATETIME(3),
			  IN p_transaction_id VARCHAR(255),
			  IN p_status VARCHAR(32),
			  IN p_amount DECIMAL(18,2),
			  IN p_bank VARCHAR(50),
			  IN p_payment_method VARCHAR(32),
			  IN p_user_id BIGINT
			)
			INSERT INTO payment_notifications
			  (occurred_at, transaction_id, status, amount, bank, payment_method, user_id)
			VALUES
			  (p_occurred_at, p_transaction_id, p_status, p_amount, p_bank, p_payment_method, p_user_id)`,
		},
		{
			"sp_get_all_payment_notifications",
			`CREATE PROCEDURE sp_get_all_payment_notifications()
			SELECT id, occurred_at, transaction_id, status, amount, bank, payment_method, user_id
			FROM payment_notifications
			ORDER BY occurred_at DESC`,
		},
		{
			"sp_get_payment_notifications_by_user",
			`CREATE PROCEDURE sp_get_payment_notifications_by_user(IN p_user_id BIGINT)
			SELECT id, occurred_at, transaction_id, status, amount, bank, payment_method, user_id
			FROM payment_notifications
			WHERE user_id = p_user_id
			ORDER BY occurred_at DESC`,
		},
		{
			"sp_get_payment_notification_by_id",
			`CREATE PROCEDURE sp_get_payment_notification_by_id(IN p_id BIGINT)
			SELECT id, occurred_at, transaction_id, status, amount, bank, payment_method, user_id
			FROM payment_notifications
			WHERE id = p_id`,
		},
	}

	for _, p := range procedures {
		if _, err := sqlDB.Exec("DROP PROCEDURE IF EXISTS " + p.name); err != nil {
			log.Fatalf("Failed to drop procedure %s: %v", p.name, err)
		}
		if _, err := sqlDB.Exec(p.body); err != nil {
			log.Fatalf("Failed to create procedure %s: %v", p.name, err)
		}
		log.Printf("✓ %s procedure created successfully", p.name)
	}
}
