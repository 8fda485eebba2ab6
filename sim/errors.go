package sim

import "errors"

var (
	// ErrNoSpawn means a level has no spawn point for a player
	ErrNoSpawn = errors.New("no spawn available")
	// ErrNoMap means a mode has an empty map pool
	ErrNoMap = errors.New("no map selected")
	// ErrUnknownLevel means a map name is not in the catalog
	ErrUnknownLevel = errors.New("unknown level")
	// ErrSessionStarted means a round is already running
	ErrSessionStarted = errors.New("round already started")
)

// ErrNoPlayers means a round was started with nobody joined
var ErrNoPlayers = errors.New("no active players")
