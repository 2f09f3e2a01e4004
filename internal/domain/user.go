package domain

import "time" // Timestamps

// User Model
type User struct {
	ID        uint             `gorm:"primaryKey" json:"id"`                                         // Primary key
	Name      string           `gorm:"not null" json:"name"`                                         // Display name
	Email     string           `gorm:"uniqueIndex;size:255;not null" json:"email"`                   // Unique, lower-cased email
	Password  string           `gorm:"not null" json:"-"`                                            // Hashed password
	CreatedAt time.Time        `json:"createdAt"`                                                    // Creation timestamp
	UpdatedAt time.Time        `json:"updatedAt"`                                                    // Last update timestamp
	Responses []YearlyResponse `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // One-to-many yearly responses
}
