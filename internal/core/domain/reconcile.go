package domain

import "time"

// UnnamedGroup is the placeholder name for listed documents without a
// name. They are grouped, never dropped.
const UnnamedGroup = "(unnamed)"

// ListedDocument is one entry from a backend's document listing.
type ListedDocument struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// KeepPolicy selects which instance of a duplicate set survives.
type KeepPolicy string

const (
	// KeepOldest retains the earliest-created instance. The default.
	KeepOldest KeepPolicy = "oldest"

	// KeepNewest retains the latest-created instance.
	KeepNewest KeepPolicy = "newest"
)

// Valid reports whether the policy is a known value.
func (p KeepPolicy) Valid() bool {
	return p == KeepOldest || p == KeepNewest
}

// DuplicateGroup is a set of documents sharing a logical name, split
// into the one retained entry and the entries flagged for deletion.
type DuplicateGroup struct {
	Name   string
	Keep   ListedDocument
	Remove []ListedDocument
}

// ReconcileReport summarises a duplicate-reconcile run.
type ReconcileReport struct {
	Scanned int
	Groups  []DuplicateGroup
	Deleted int
	Failed  int
	DryRun  bool
}

// PendingDeletes returns the total number of entries flagged for deletion.
func (r *ReconcileReport) PendingDeletes() int {
	n := 0
	for i := range r.Groups {
		n += len(r.Groups[i].Remove)
	}
	return n
}
