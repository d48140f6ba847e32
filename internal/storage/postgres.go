package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var postgresDialect = dialect{
	name:      "postgres",
	numbered:  true,
	returning: true,
	schema: `
		CREATE TABLE IF NOT EXISTS completions (
			id SERIAL PRIMARY KEY,
			pack TEXT NOT NULL,
			level INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			moves INTEGER NOT NULL,
			pushes INTEGER NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_completions_pack ON completions(pack);
		CREATE INDEX IF NOT EXISTS idx_completions_best ON completions(pack, level, moves, pushes);
	`,
}

// openPostgres connects to a shared PostgreSQL records database, used when
// several SSH servers record into one place.
func openPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	return newStore(db, postgresDialect)
}
