package dto

// SaveTemplateRequest 创建/更新邮件模板请求
type SaveTemplateRequest struct {
	Slug     string `json:"slug" binding:"required,max=50"`
	Subject  string `json:"subject" binding:"required,max=200"`
	HTMLBody string `json:"html_body" binding:"required"`
}

// CreateNewsletterRequest 创建通讯草稿请求
type CreateNewsletterRequest struct {
	Subject  string `json:"subject" binding:"required,max=200"`
	HTMLBody string `json:"html_body" binding:"required"`
}
