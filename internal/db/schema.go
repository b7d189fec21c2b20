package db

import "context"

// Схема базы данных. Операторы идемпотентны, так что применение при каждом
// старте безопасно.
var schemaStatements = []string{
	`DO $$ BEGIN
		CREATE TYPE shoe_size_system AS ENUM ('us', 'eu', 'uk');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		CREATE TYPE foot AS ENUM ('left', 'right');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		CREATE TYPE shoe_condition AS ENUM ('new', 'like_new', 'good', 'fair', 'poor');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		CREATE TYPE exchange_status AS ENUM ('pending', 'accepted', 'completed', 'cancelled');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL,
		name TEXT NOT NULL,
		location TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (LOWER(email))`,

	`CREATE TABLE IF NOT EXISTS shoe_listings (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		brand TEXT NOT NULL,
		model TEXT NOT NULL,
		size NUMERIC(4,1) NOT NULL CHECK (size > 0),
		size_system shoe_size_system NOT NULL,
		foot foot NOT NULL,
		condition shoe_condition NOT NULL,
		color TEXT NOT NULL,
		description TEXT,
		image_url TEXT,
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS exchange_requests (
		id UUID PRIMARY KEY,
		requester_listing_id UUID NOT NULL REFERENCES shoe_listings(id),
		target_listing_id UUID NOT NULL REFERENCES shoe_listings(id),
		status exchange_status NOT NULL DEFAULT 'pending',
		message TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_shoe_listings_user_id ON shoe_listings (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_exchange_requests_requester ON exchange_requests (requester_listing_id)`,
	`CREATE INDEX IF NOT EXISTS idx_exchange_requests_target ON exchange_requests (target_listing_id)`,
}

// applySchema последовательно выполняет операторы схемы
func applySchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := Pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
