package supabase

import "strings"

// joinIDs renders an id list for a PostgREST `in.(...)` filter.
func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}
