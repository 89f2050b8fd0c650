package dto

import "time"

// UserInfo 用户信息（返回给前端）
type UserInfo struct {
	ID                       int64     `json:"id"`
	Username                 string    `json:"username"`
	Email                    string    `json:"email"`
	AvatarURL                string    `json:"avatar_url"`
	Role                     string    `json:"role"`
	PersonalCredits          int       `json:"personal_credits"`
	TotalDonated             float64   `json:"total_donated"`
	CommunityListingsDonated int       `json:"community_listings_donated"`
	FreeListingsUsedToday    int       `json:"free_listings_used_today"`
	NewsletterOptIn          bool      `json:"newsletter_opt_in"`
	CreatedAt                time.Time `json:"created_at"`
}

// SearchUsersRequest 用户搜索请求（query 参数）
type SearchUsersRequest struct {
	Query    string `form:"q"`
	Role     string `form:"role"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// UpdateRoleRequest 修改用户角色请求
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user moderator admin"`
}
