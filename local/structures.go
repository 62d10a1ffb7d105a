package local

type DecodeResponse struct {
	Message  string   `json:"message"`
	Warnings []string `json:"warnings,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
