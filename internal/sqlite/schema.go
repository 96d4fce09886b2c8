package sqlite

import (
	"fmt"

	"github.com/rpgshelf/shelf/pkg/types"
)

// Schema DDL, one block per store file. Every statement is idempotent so
// opening an existing file leaves its data untouched.
const (
	createPublishers = `CREATE TABLE IF NOT EXISTS publishers (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    website TEXT,
    country TEXT
);`

	createPlayers = `CREATE TABLE IF NOT EXISTS players (
    id INTEGER PRIMARY KEY,
    nickname TEXT NOT NULL,
    full_name TEXT,
    gender TEXT,
    social TEXT,
    is_primary INTEGER NOT NULL DEFAULT 0,
    notable INTEGER NOT NULL DEFAULT 0
);`

	createSystems = `CREATE TABLE IF NOT EXISTS systems (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    kind TEXT NOT NULL,
    parent_id INTEGER,
    supplement_types TEXT,
    publisher_id INTEGER,
    physical INTEGER NOT NULL DEFAULT 0,
    pdf INTEGER NOT NULL DEFAULT 0,
    vtt TEXT,
    language TEXT,
    play_status TEXT DEFAULT 'Not played',
    collection_status TEXT DEFAULT 'Owned',
    purchase_price REAL,
    purchase_currency TEXT,
    sale_price REAL,
    sale_currency TEXT
);`

	createSystemsParentIndex = `CREATE INDEX IF NOT EXISTS idx_systems_parent ON systems(parent_id);`

	createSessions = `CREATE TABLE IF NOT EXISTS sessions (
    id INTEGER PRIMARY KEY,
    date TEXT NOT NULL,
    system_id INTEGER,
    player_count INTEGER NOT NULL DEFAULT 0,
    gm_id INTEGER,
    campaign INTEGER NOT NULL DEFAULT 0,
    one_shot INTEGER NOT NULL DEFAULT 0,
    campaign_title TEXT,
    adventure_title TEXT
);`

	createSessionPlayers = `CREATE TABLE IF NOT EXISTS session_players (
    session_id INTEGER NOT NULL,
    player_id INTEGER NOT NULL,
    PRIMARY KEY (session_id, player_id)
);`
)

// storeSchemas maps each store to its DDL.
var storeSchemas = map[string]string{
	types.PublishersStore: createPublishers,
	types.PlayersStore:    createPlayers,
	types.SystemsStore:    createSystems + "\n" + createSystemsParentIndex,
	types.SessionsStore:   createSessions + "\n" + createSessionPlayers,
}

// schemaFor returns the DDL of a store.
func schemaFor(store string) (string, error) {
	ddl, ok := storeSchemas[store]
	if !ok {
		return "", fmt.Errorf("unknown store %q", store)
	}
	return ddl, nil
}
