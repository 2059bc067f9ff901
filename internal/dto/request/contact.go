package request

// AddContactRequest adds a user to the caller's contact list.
type AddContactRequest struct {
	ContactID uint `json:"contact_id" binding:"required"`
}

// BlockRequest blocks or unblocks a user for the caller.
type BlockRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}
