package models

import "time"

// Journal is the serializable snapshot of a committed journal entry.
type Journal struct {
	JournalID   string    `json:"journalID" db:"journal_id"`
	JournalDate time.Time `json:"journalDate" db:"journal_date"`
	Description string    `json:"description" db:"description"`
	Committed   bool      `json:"committed" db:"committed"`
	AuditFields
}
