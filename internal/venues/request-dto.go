package venues

// CreateVenueRequest creates a venue with its operating window
type CreateVenueRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=120"`
	Address   string `json:"address" binding:"omitempty,max=255"`
	Commune   string `json:"commune" binding:"omitempty,max=120"`
	Phone     string `json:"phone" binding:"omitempty,max=30"`
	Email     string `json:"email" binding:"omitempty,email"`
	MapsURL   string `json:"maps_url" binding:"omitempty,url"`
	OpenTime  string `json:"open_time" binding:"omitempty,len=5" validate:"omitempty,clock"`
	CloseTime string `json:"close_time" binding:"omitempty,len=5" validate:"omitempty,clock"`
}

// UpdateVenueRequest updates venue fields, nil fields are left untouched
type UpdateVenueRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=120"`
	Address   *string `json:"address" binding:"omitempty,max=255"`
	Commune   *string `json:"commune" binding:"omitempty,max=120"`
	Phone     *string `json:"phone" binding:"omitempty,max=30"`
	Email     *string `json:"email" binding:"omitempty,email"`
	MapsURL   *string `json:"maps_url" binding:"omitempty,url"`
	OpenTime  *string `json:"open_time" binding:"omitempty,len=5" validate:"omitempty,clock"`
	CloseTime *string `json:"close_time" binding:"omitempty,len=5" validate:"omitempty,clock"`
	Active    *bool   `json:"active"`
}
