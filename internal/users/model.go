package users

import "time"

type User struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	Username               string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email                  string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash           string     `gorm:"not null" json:"-"`
	FirstName              string     `gorm:"size:50;not null" json:"firstName"`
	LastName               string     `gorm:"size:50;not null" json:"lastName"`
	FavoriteGenres         []string   `gorm:"serializer:json" json:"favoriteGenres"`
	IsEmailVerified        bool       `gorm:"default:false" json:"isEmailVerified"`
	EmailVerificationToken *string    `gorm:"index" json:"-"`
	ResetPasswordToken     *string    `gorm:"index" json:"-"`
	ResetPasswordExpires   *time.Time `json:"-"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// PublicProfile is the owner identity attached to comments and ratings
// for display.
type PublicProfile struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
