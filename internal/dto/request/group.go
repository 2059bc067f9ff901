package request

// CreateGroupRequest creates a group; the creator becomes its admin.
type CreateGroupRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Description  string  `json:"description"`
	IsPremium    bool    `json:"is_premium"`
	PremiumPrice float64 `json:"premium_price" binding:"gte=0"`
	MaxMembers   int     `json:"max_members" binding:"gte=0"`
}
