package api

// ErrorResponse тело ответа сервера с ошибкой.
// Backend возвращает detail, прокси-слой - message.
type ErrorResponse struct {
	Detail  string `json:"detail,omitempty"`
	Message string `json:"message,omitempty"`
}

// Text returns whichever field is set
func (e ErrorResponse) Text() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}
