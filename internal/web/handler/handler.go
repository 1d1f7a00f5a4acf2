// Package handler defines the protocol response envelope shared by all
// device-facing endpoints and the constants of the handler layer.
package handler

const (
	// RouterRootPath is the root path of a handler route group.
	RouterRootPath = "/"
)

// Protocol statuses of the response envelope. The handlers are the only
// layer translating typed errors into these statuses.
const (
	// StatusOK marks a successful response.
	StatusOK = "OK"
	// StatusDeviceNotFound marks the distinguished not-found outcome for
	// devices and their configurations.
	StatusDeviceNotFound = "DEVICE_NOT_FOUND"
	// StatusError marks any unexpected internal failure. Internal detail
	// never leaks to the caller.
	StatusError = "ERROR"
)

// Response is the envelope of every JSON protocol response.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK builds a success envelope around data.
func OK(data any) Response {
	return Response{Status: StatusOK, Data: data}
}

// DeviceNotFound builds the distinguished device-not-found envelope.
func DeviceNotFound() Response {
	return Response{Status: StatusDeviceNotFound, Message: "device not found"}
}

// InternalError builds a generic internal error envelope.
func InternalError() Response {
	return Response{Status: StatusError, Message: "internal error"}
}

// ValidationError builds an envelope for malformed request bodies.
func ValidationError(message string) Response {
	return Response{Status: StatusError, Message: message}
}
