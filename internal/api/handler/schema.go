package handler

// --- Users ---

// registerRequest leaves the email format to the User entity so that the
// API and the service accept the same addresses.
type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email"    validate:"omitempty,max=254"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type updateProfileRequest struct {
	Password string `json:"password" validate:"required"`
}

// --- Products ---

type productRequest struct {
	Name        string  `json:"name"        validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Stock       int     `json:"stock"       validate:"gte=0"`
	Category    string  `json:"category"    validate:"max=100"`
	ImageURL    string  `json:"image_url"   validate:"omitempty,url"`
}

type stockRequest struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

type quantityRequest struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

type stockResponse struct {
	ID    string `json:"id"`
	Stock int    `json:"stock"`
}

type reviewRequest struct {
	Rating *float64 `json:"rating" validate:"required,gte=0,lte=5"`
}
