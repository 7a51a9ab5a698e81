package models

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Username     string  `gorm:"uniqueIndex;not null"`
	PasswordHash string  // empty for SSO-only accounts
	OIDCID       *string `gorm:"uniqueIndex"` // OpenID Connect subject
	FullName     string
	Email        string
	Phone        string
}
