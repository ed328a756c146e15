package domain

type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is a blocking notification shown to the visitor once.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}
