package types

// Store names. Each store is a separate database file holding one entity
// family; sessions also hold the session to player join table.
const (
	PublishersStore = "publishers"
	PlayersStore    = "players"
	SystemsStore    = "systems"
	SessionsStore   = "sessions"
)

// StandardStoreNames lists all store names in bootstrap order.
var StandardStoreNames = []string{
	PublishersStore,
	PlayersStore,
	SystemsStore,
	SessionsStore,
}

// StoreFileName returns the database file name for a store.
func StoreFileName(store string) string {
	return store + ".db"
}
