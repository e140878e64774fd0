package models

import "io"

type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

type IPBCreate struct {
	Title   string
	Items   []Item
	Uploads map[Slot]*Upload
}

// IPBUpdate carries only what the client sent: nil pointers and absent map
// keys leave the stored value untouched.
type IPBUpdate struct {
	Title   *string
	Status  *Status
	TextIPB *string
	Uploads map[Slot]*Upload
	Remove  map[Slot]bool
}
