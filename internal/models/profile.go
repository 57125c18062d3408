package models

import (
	"time"

	"gorm.io/gorm"
)

type Profile struct {
	gorm.Model
	UserID        uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName      string     `gorm:"not null" json:"full_name"`
	Gender        string     `gorm:"not null" json:"gender"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	City          string     `json:"city"`
	Education     string     `json:"education"`
	Profession    string     `json:"profession"`
	MaritalStatus string     `json:"marital_status"`
	Bio           string     `json:"bio"`
	Requirements  string     `json:"requirements"`

	// Contact fields are access-restricted. They are never serialized and
	// never selected in directory queries; the contact service is the only
	// read path, and only after an accepted proposal.
	Phone    string `json:"-"`
	Whatsapp string `json:"-"`

	ProfilePictureURL string `json:"profile_picture_url"`
	IDDocumentURL     string `json:"id_document_url"`
	SelfieURL         string `json:"selfie_url"`

	// Moderation flags, admin-writable only.
	IsApproved bool `gorm:"default:false" json:"is_approved"`
	IsVerified bool `gorm:"default:false" json:"is_verified"`
	IsBlocked  bool `gorm:"default:false" json:"is_blocked"`
	IsFeatured bool `gorm:"default:false" json:"is_featured"`
}

// PublicProfile is the directory-safe projection of a Profile. It carries
// everything a browsing user may see and nothing else.
type PublicProfile struct {
	ID                uint       `json:"id"`
	UserID            uint       `json:"user_id"`
	FullName          string     `json:"full_name"`
	Gender            string     `json:"gender"`
	DateOfBirth       *time.Time `json:"date_of_birth"`
	City              string     `json:"city"`
	Education         string     `json:"education"`
	Profession        string     `json:"profession"`
	MaritalStatus     string     `json:"marital_status"`
	Bio               string     `json:"bio"`
	Requirements      string     `json:"requirements"`
	ProfilePictureURL string     `json:"profile_picture_url"`
	IsVerified        bool       `json:"is_verified"`
	IsFeatured        bool       `json:"is_featured"`
}

// Public strips the restricted and moderation-internal fields.
func (p *Profile) Public() PublicProfile {
	return PublicProfile{
		ID:                p.ID,
		UserID:            p.UserID,
		FullName:          p.FullName,
		Gender:            p.Gender,
		DateOfBirth:       p.DateOfBirth,
		City:              p.City,
		Education:         p.Education,
		Profession:        p.Profession,
		MaritalStatus:     p.MaritalStatus,
		Bio:               p.Bio,
		Requirements:      p.Requirements,
		ProfilePictureURL: p.ProfilePictureURL,
		IsVerified:        p.IsVerified,
		IsFeatured:        p.IsFeatured,
	}
}

// Age returns the profile holder's age in full years, or 0 when the date of
// birth is not set.
func (p *Profile) Age() int {
	if p.DateOfBirth == nil {
		return 0
	}
	now := time.Now()
	age := now.Year() - p.DateOfBirth.Year()
	if now.YearDay() < p.DateOfBirth.YearDay() {
		age--
	}
	return age
}
