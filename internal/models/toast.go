package models

// ToastType classifies a toast notification.
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastWarning ToastType = "warning"
)

// Toast is an ephemeral user-facing status message.
type Toast struct {
	Message string    `json:"message"`
	Type    ToastType `json:"type"`
}
