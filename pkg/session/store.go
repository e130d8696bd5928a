// Package session holds the transient per-login state: the survey cursor,
// the selected holder and cached coordinates. It is owned by exactly one
// session, discarded at logout, and always reconstructible from persisted
// completion records.
package session

import "context"

// State is the cursor data for one logged-in session.
type State struct {
	UserID    uint     `json:"user_id"`
	HolderID  uint     `json:"holder_id"`
	Section   int      `json:"section"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Store persists session state keyed by session id. Get returns (nil, nil)
// for an unknown session; the caller then re-derives the cursor.
type Store interface {
	Get(ctx context.Context, sid string) (*State, error)
	Put(ctx context.Context, sid string, st *State) error
	Delete(ctx context.Context, sid string) error
}
