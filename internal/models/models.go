package models

// User represents a row in the users table. The stored bcrypt hash is never
// serialized into a response.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Language represents a row in the languages table.
type Language struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Coolness int    `json:"coolness"`
}

// RegisterRequest is the JSON body for POST /api/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse is the success payload for POST /api/register.
type RegisterResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// CreateLanguageRequest is the JSON body for POST /api/languages.
// Coolness is a pointer so a missing field can be told apart from zero.
type CreateLanguageRequest struct {
	Name     string `json:"name"`
	Coolness *int   `json:"coolness"`
}

// LanguageList is the envelope returned by GET /api/languages.
type LanguageList struct {
	Data []Language `json:"data"`
}

// Greeting is the payload for GET /api/greeting.
type Greeting struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}
