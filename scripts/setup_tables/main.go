package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	dbURL := os.Getenv("SUPABASE_DB_URL")
	if dbURL == "" {
		log.Fatal("SUPABASE_DB_URL environment variable is required")
	}

	// Read environment to determine table prefix
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev" // Default to dev
	}

	var prefix string
	if env == "prod" {
		prefix = ""
	} else {
		prefix = env + "_"
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	createSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]sfolders (
			id UUID PRIMARY KEY,
			parent_id UUID REFERENCES %[1]sfolders(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			user_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS %[1]sfolders_user_parent_idx
			ON %[1]sfolders (user_id, parent_id);

		CREATE TABLE IF NOT EXISTS %[1]sproducts (
			id UUID PRIMARY KEY,
			folder_id UUID REFERENCES %[1]sfolders(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT,
			glb_file_path TEXT NOT NULL,
			thumbnail_url TEXT,
			user_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS %[1]sproducts_user_folder_idx
			ON %[1]sproducts (user_id, folder_id);

		CREATE TABLE IF NOT EXISTS %[1]sconfigurations (
			id UUID PRIMARY KEY,
			product_id UUID NOT NULL REFERENCES %[1]sproducts(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			variant_name TEXT,
			transform JSONB NOT NULL,
			materials JSONB NOT NULL,
			lighting JSONB NOT NULL,
			share_token TEXT UNIQUE,
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			user_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS %[1]sconfigurations_user_product_idx
			ON %[1]sconfigurations (user_id, product_id);
	`, prefix)

	if _, err := db.Exec(createSQL); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	fmt.Printf("All tables created successfully (prefix: %s)\n", prefix)
}
