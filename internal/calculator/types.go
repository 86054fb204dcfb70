package calculator

// Request is the JSON body of POST /Home/Calculate. Field names match the
// browser client's payload.
type Request struct {
	FirstNumber  string `json:"FirstNumber"`
	SecondNumber string `json:"SecondNumber"`
	Operation    string `json:"Operation"`
}

// OperandsRequest is the JSON body for POST /calculator/{operation}, where
// the operator comes from the URL.
type OperandsRequest struct {
	FirstNumber  string `json:"FirstNumber"`
	SecondNumber string `json:"SecondNumber"`
}

// Response is the JSON reply for every calculation endpoint. Exactly one of
// Result (on success) or Message (on failure) is set.
type Response struct {
	Success bool   `json:"success"`
	Result  string `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
}
