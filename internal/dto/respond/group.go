package respond

// GroupRespond describes a group.
type GroupRespond struct {
	GroupID     uint   `json:"group_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPremium   bool   `json:"is_premium"`
	MemberCount int    `json:"member_count"`
}

// GroupMemberRespond is one member in a membership listing.
type GroupMemberRespond struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// UploadRespond returns the blob reference for an uploaded file.
type UploadRespond struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}
