package model

// Reply is the payload handed back to the chat transport. Exactly one of
// the photo fields may be set; Text doubles as the caption when a photo is
// present.
type Reply struct {
	Text      string `json:"text,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	PhotoPath string `json:"photo_path,omitempty"`
}

// HasPhoto reports whether the reply should be sent as a photo message.
func (r Reply) HasPhoto() bool {
	return r.PhotoURL != "" || r.PhotoPath != ""
}
