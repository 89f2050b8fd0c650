package dto

// UpdateSettingRequest 更新单个设置项请求
type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// AICostInfo AI 成本信息
type AICostInfo struct {
	Model               string  `json:"model"`
	AvgTokensPerListing int     `json:"avg_tokens_per_listing"`
	TokenCostPerMillion float64 `json:"token_cost_per_million"`
	CostPerListing      float64 `json:"cost_per_listing"`
}
