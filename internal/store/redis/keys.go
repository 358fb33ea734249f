package redis

import (
	"fmt"
	"strings"
)

const (
	// KeyPrefixBoard is the prefix for board state keys
	KeyPrefixBoard = "linkboard:board:"
	// KeyAllBoards is the set of every stored board ID
	KeyAllBoards = "linkboard:boards:all"
	// KeyPrefixShared is the prefix for shared category snapshots
	KeyPrefixShared = "linkboard:shared_category:"
	// KeyPrefixSharedViews counts viewer hits per snapshot
	KeyPrefixSharedViews = "linkboard:shared_views:"
	// KeyPrefixCache is the prefix for cached open-query resolutions
	KeyPrefixCache = "linkboard:cache:"
)

func BoardKey(id string) string { return KeyPrefixBoard + id }

func AllBoardsKey() string { return KeyAllBoards }

func SharedKey(id string) string { return KeyPrefixShared + id }

func SharedViewsKey(id string) string { return KeyPrefixSharedViews + id }

// CacheKey scopes a resolution to its board. Queries are case-folded.
func CacheKey(boardID, query string) string {
	return KeyPrefixCache + boardID + ":" + strings.ToLower(strings.TrimSpace(query))
}

// boardCachePattern matches every cached resolution of a board.
func boardCachePattern(boardID string) string {
	return KeyPrefixCache + boardID + ":*"
}

// ExtractBoardID extracts the board ID from a Redis key
func ExtractBoardID(key string) (string, error) {
	if !strings.HasPrefix(key, KeyPrefixBoard) || len(key) == len(KeyPrefixBoard) {
		return "", fmt.Errorf("invalid board key: %s", key)
	}
	return key[len(KeyPrefixBoard):], nil
}
