package users

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// NormalizeEmail lowercases and trims an address; emails are unique
// case-insensitively, so every lookup and write goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a new user, reporting which uniqueness rule a duplicate
// hit. The pre-check gives a precise message; the unique indexes stay
// authoritative when two registrations race.
func Create(db *gorm.DB, u *User) error {
	u.Email = NormalizeEmail(u.Email)
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))

	var existing User
	err := db.Where("email = ? OR username = ?", u.Email, u.Username).First(&existing).Error
	if err == nil {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
		return ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return duplicateErr(db, u)
		}
		return err
	}
	return nil
}

// duplicateErr re-queries after a unique violation to report which of the
// two indexes the racing insert hit.
func duplicateErr(db *gorm.DB, u *User) error {
	var n int64
	if err := db.Model(&User{}).Where("email = ?", u.Email).Count(&n).Error; err == nil && n > 0 {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

func FindByID(db *gorm.DB, id uint) (*User, error) {
	var u User
	if err := db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func FindByEmail(db *gorm.DB, email string) (*User, error) {
	var u User
	if err := db.First(&u, "email = ?", NormalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ConsumeVerificationToken marks the matching user verified and clears
// the token so it cannot be replayed.
func ConsumeVerificationToken(db *gorm.DB, token string) (*User, error) {
	var u User
	if err := db.First(&u, "email_verification_token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.IsEmailVerified = true
	u.EmailVerificationToken = nil
	if err := db.Save(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// SetResetToken stores a fresh reset token with its expiry, replacing any
// previous one so at most one live token exists per user.
func SetResetToken(db *gorm.DB, u *User, token string, ttl time.Duration) error {
	expires := time.Now().Add(ttl)
	u.ResetPasswordToken = &token
	u.ResetPasswordExpires = &expires
	return db.Save(u).Error
}

// ConsumeResetToken sets a new password for the user holding a live
// (non-expired) reset token and clears the token.
func ConsumeResetToken(db *gorm.DB, token, newPassword string) (*User, error) {
	var u User
	err := db.Where("reset_password_token = ? AND reset_password_expires > ?", token, time.Now()).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
	if err := db.Save(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
