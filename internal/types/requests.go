package types

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the form body for POST /api/auth/login. The username
// field is accepted as an alias for email for OAuth2-style password forms.
type LoginRequest struct {
	Email    string `form:"email"`
	Username string `form:"username"`
	Password string `form:"password" binding:"required"`
}

// CreateRecipeRequest is the body for POST /api/recipe/. List-valued
// fields are serialized into comma-separated text before storage.
type CreateRecipeRequest struct {
	Title                  string   `json:"title" binding:"required"`
	Ingredients            []string `json:"ingredients" binding:"required"`
	Instructions           string   `json:"instructions" binding:"required"`
	Tags                   []string `json:"tags"`
	SimplifiedInstructions *string  `json:"simplified_instructions"`
	Calories               *int     `json:"calories"`
}

// UpdateRecipeRequest is the body for PUT /api/recipe/{id}. Only fields
// present in the request are applied; list-valued fields replace the
// stored delimited value wholesale.
type UpdateRecipeRequest struct {
	Title                  *string   `json:"title"`
	Ingredients            *[]string `json:"ingredients"`
	Instructions           *string   `json:"instructions"`
	Tags                   *[]string `json:"tags"`
	SimplifiedInstructions *string   `json:"simplified_instructions"`
	Calories               *int      `json:"calories"`
}

// RateRequest is the body for POST /api/recipe/{id}/rate.
type RateRequest struct {
	Rate int `json:"rate" binding:"required,gte=1,lte=5"`
}
