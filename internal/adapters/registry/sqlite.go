package registry

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/pigi/proxy/internal/core/models"
)

// loadSQLite reads the full mapping from a SQLite database once and closes
// it; the registry itself stays in memory like every other source. The
// expected schema is packages(package TEXT PRIMARY KEY, owner TEXT NOT NULL,
// name TEXT NOT NULL).
func loadSQLite(path string) (*Registry, error) {
	// The driver would create an empty database for a missing path
	// instead of failing.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading registry source: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening registry database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT package, owner, name FROM packages")
	if err != nil {
		return nil, fmt.Errorf("querying registry database: %w", err)
	}
	defer rows.Close()

	repos := make(map[string]models.Repository)
	for rows.Next() {
		var pkg string
		var repo models.Repository
		if err := rows.Scan(&pkg, &repo.Owner, &repo.Name); err != nil {
			return nil, fmt.Errorf("scanning registry row: %w", err)
		}
		repos[pkg] = repo
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading registry rows: %w", err)
	}
	return New(repos)
}
