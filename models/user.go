package models

import "time"

// User represents a registered author. Passwords are stored as bcrypt hashes only.
//
// Users are created through registration and never updated or deleted
// afterwards; there is no rename operation. Username uniqueness is enforced
// by the storage layer via the unique index.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	Posts        []Post    `gorm:"foreignKey:AuthorID" json:"-"`
}
