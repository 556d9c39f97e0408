package vault

import (
	"database/sql"
	"fmt"
	"time"
)

// HandoffTTL is how long a pending teleport handoff stays claimable.
const HandoffTTL = 5 * time.Minute

// Handoff is a compressed context parked for pickup after a teleport.
type Handoff struct {
	Text      string `json:"text"`
	Target    string `json:"target"`
	CreatedAt int64  `json:"createdAt"`
}

// SetPendingHandoff stores the handoff, replacing any previous one. Only a
// single handoff is pending at a time.
func (db *DB) SetPendingHandoff(text, target string) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT OR REPLACE INTO handoffs (id, text, target, created_at)
		VALUES (1, ?, ?, ?)
	`, text, target, now)
	if err != nil {
		return fmt.Errorf("set handoff: %w", err)
	}
	return nil
}

// TakePendingHandoff claims and clears the pending handoff. It returns nil
// when there is none or the pending one is older than HandoffTTL.
func (db *DB) TakePendingHandoff() (*Handoff, error) {
	var h Handoff
	err := db.QueryRow(`
		SELECT text, target, created_at FROM handoffs WHERE id = 1
	`).Scan(&h.Text, &h.Target, &h.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get handoff: %w", err)
	}

	if _, err := db.Exec("DELETE FROM handoffs WHERE id = 1"); err != nil {
		return nil, fmt.Errorf("clear handoff: %w", err)
	}

	if time.Now().UnixMilli()-h.CreatedAt > HandoffTTL.Milliseconds() {
		return nil, nil
	}
	return &h, nil
}
