// Package txbind implements transactional binding of pooled, connection-like
// sessions. A binding records which session-level settings (isolation level,
// autocommit mode) a transaction manager overrode for the duration of a
// transaction and guarantees they are restored exactly once, on the correct
// exit path, before the session is released back to its pool.
package txbind

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// IsolationLevel defines the transaction isolation level of a session.
type IsolationLevel int

// Isolation levels from lowest to highest isolation.
const (
	LevelDefault         IsolationLevel = 0 // Keep the session's current level
	LevelReadUncommitted IsolationLevel = 1 // Lowest isolation level
	LevelReadCommitted   IsolationLevel = 2 // Prevents dirty reads
	LevelRepeatableRead  IsolationLevel = 3 // Prevents non-repeatable reads
	LevelSerializable    IsolationLevel = 4 // Highest isolation level
)

// levelNames canonical SQL spellings of the isolation levels.
var levelNames = map[IsolationLevel]string{ //nolint:gochecknoglobals // read-only
	LevelReadUncommitted: "read uncommitted",
	LevelReadCommitted:   "read committed",
	LevelRepeatableRead:  "repeatable read",
	LevelSerializable:    "serializable",
}

// levelValues reverse lookup for ParseIsolationLevel.
var levelValues = lo.Invert(levelNames) //nolint:gochecknoglobals // read-only

// String returns the canonical SQL spelling of the level.
func (l IsolationLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	if l == LevelDefault {
		return "default"
	}

	return fmt.Sprintf("isolation(%d)", int(l))
}

// Valid returns true if the level is one of the defined isolation levels.
// LevelDefault is valid: it means "do not change the session's level".
func (l IsolationLevel) Valid() bool {
	_, ok := levelNames[l]
	return ok || l == LevelDefault
}

// ParseIsolationLevel converts an isolation level name to IsolationLevel.
// It accepts the spellings used by PostgreSQL ("read committed") and MySQL
// ("READ-COMMITTED") system variables.
func ParseIsolationLevel(s string) (IsolationLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")

	level, ok := levelValues[name]
	if !ok {
		return LevelDefault, fmt.Errorf("unknown isolation level %q", s)
	}

	return level, nil
}
