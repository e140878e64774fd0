package dto

type UserRequest struct {
	Login      string `json:"login"`
	Password   string `json:"pswd"`
	Role       string `json:"role"`
	AdminToken string `json:"token"`
}

type SessionRequest struct {
	Login    string `json:"login"`
	Password string `json:"pswd"`
}

type SessionResponse struct {
	Token string `json:"token"`
	Login string `json:"login"`
	Role  string `json:"role"`
}
