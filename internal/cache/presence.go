package cache

import (
	"context"
	"time"
)

// Presence states reported by the activity endpoints. A user whose presence
// key has expired (or was never set) is offline.
const (
	PresenceOnline  = "online"
	PresenceAFK     = "afk"
	PresenceOffline = "offline"
)

// Presence is the stored activity record for one user.
type Presence struct {
	State    string    `json:"state"`
	LastSeen time.Time `json:"last_seen"`
}

// Heartbeat marks the user online for ttl. Heartbeats are fire-and-forget
// telemetry: callers may ignore the returned error.
func Heartbeat(ctx context.Context, userID uint, ttl time.Duration) error {
	return SetJSON(ctx, PresenceKey(userID), Presence{
		State:    PresenceOnline,
		LastSeen: time.Now().UTC(),
	}, ttl)
}

// MarkAFK flags the user as away without extending their window beyond ttl.
func MarkAFK(ctx context.Context, userID uint, ttl time.Duration) error {
	return SetJSON(ctx, PresenceKey(userID), Presence{
		State:    PresenceAFK,
		LastSeen: time.Now().UTC(),
	}, ttl)
}

// GetPresence returns the presence record for a single user. Users without a
// live key are reported offline.
func GetPresence(ctx context.Context, userID uint) Presence {
	var p Presence
	found, err := GetJSON(ctx, PresenceKey(userID), &p)
	if err != nil || !found {
		return Presence{State: PresenceOffline}
	}
	return p
}

// GetPresences returns presence for each requested user keyed by user ID.
func GetPresences(ctx context.Context, userIDs []uint) map[uint]Presence {
	result := make(map[uint]Presence, len(userIDs))
	for _, id := range userIDs {
		result[id] = GetPresence(ctx, id)
	}
	return result
}
