package model

// Attachment is an image picked in the post composer, buffered until submit.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (a Attachment) Size() int64 {
	return int64(len(a.Data))
}
