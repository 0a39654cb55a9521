package transport

// Envelope wraps every JSON response body. Exactly one of Data and Error is set.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  *ErrorBody  `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// ErrorBody carries the request id so a client report can be matched to the server log line.
type ErrorBody struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// PageMeta describes a page of journal results.
type PageMeta struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{Status: "success", Data: data, Meta: meta}
}

func NewError(code, message, requestID string, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  &ErrorBody{Message: message, RequestID: requestID},
		Meta:   meta,
	}
}
