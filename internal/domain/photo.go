package domain

// Photo is an uploaded image inside a customization session. Identity is the
// generated ID: captions and image data mutate in place, so structural
// equality is never used to compare photos.
type Photo struct {
	ID         string `json:"id"`
	PreviewURL string `json:"previewUrl"`
	Filename   string `json:"filename"`
	MIMEType   string `json:"-"`
	Data       []byte `json:"-"`
	Caption    string `json:"caption"`
	Date       string `json:"date"`
}
