package transport

import "github.com/fastygo/dashboard/domain"

// ErrorBody is the JSON body of every non-2xx response.
type ErrorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

func NewError(code domain.ErrorCode, message string, fields []domain.FieldError) ErrorBody {
	return ErrorBody{
		Code:    string(code),
		Message: message,
		Fields:  fields,
	}
}

// MessageBody answers /me when the token outlives its account.
type MessageBody struct {
	Message string `json:"message"`
}

type HealthBody struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Services  map[string]bool `json:"services,omitempty"`
}
