package model

import (
	"time"
)

// 用户角色
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID                        int64      `gorm:"primaryKey" json:"id"`
	Username                  string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email                     string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash              string     `gorm:"size:255" json:"-"`
	AvatarURL                 string     `gorm:"size:500" json:"avatar_url"`
	Role                      string     `gorm:"size:20;default:user;index" json:"role"`
	PersonalCredits           int        `gorm:"default:0" json:"personal_credits"`
	TotalDonated              float64    `gorm:"type:decimal(10,2);default:0" json:"total_donated"`
	CommunityListingsDonated  int        `gorm:"default:0" json:"community_listings_donated"`
	FreeListingsUsedToday     int        `gorm:"default:0" json:"free_listings_used_today"`
	FreeListingsResetAt       *time.Time `json:"free_listings_reset_at,omitempty"`
	NewsletterOptIn           bool       `gorm:"default:true" json:"newsletter_opt_in"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
