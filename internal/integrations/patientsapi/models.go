package patientsapi

// CreatePatientRequest тело POST /createPatients/
type CreatePatientRequest struct {
	LastName   string `json:"lastname"`
	FirstName  string `json:"firstname"`
	MiddleName string `json:"midname"`
	BirthDate  string `json:"bdate"` // YYYY-MM-DD
	Login      string `json:"cllogin"`
	Password   string `json:"clpassword"`
	Phone      string `json:"phone,omitempty"`
}

// UpdateCredentialsRequest тело PUT /updatePatients/{pcode}/credentials
type UpdateCredentialsRequest struct {
	Login    string `json:"cllogin"`
	Password string `json:"clpassword"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
