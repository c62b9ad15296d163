package models

type UploadOutcome string

const (
	OutcomeCreated UploadOutcome = "created"
	OutcomeUpdated UploadOutcome = "updated"
)

// StoredDocument describes a markdown file written into a content collection
type StoredDocument struct {
	Collection string        `json:"collection"`
	EntryID    string        `json:"entryId"`
	Filename   string        `json:"filename"`
	Outcome    UploadOutcome `json:"outcome"`
}

// UploadedImage describes an image stored on the image host
type UploadedImage struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Format   string `json:"format,omitempty"`
}
