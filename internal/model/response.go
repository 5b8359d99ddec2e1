package model

// Response is the uniform result shape returned by the dispatch surface for
// every action.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

// OK builds a successful response.
func OK(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

// Fail builds a failed response.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

// Snapshot is the full platform state returned by fetchAllData. Users carry
// no passwords and orders are sorted newest first.
type Snapshot struct {
	Users      []User     `json:"users"`
	Categories []Category `json:"categories"`
	MenuItems  []MenuItem `json:"menuItems"`
	Orders     []Order    `json:"orders"`
}
