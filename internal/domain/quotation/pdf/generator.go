package pdf

import "wm-ferretero/go_backend/internal/domain/quotation"

// MIMEType identifies the produced artifact.
const MIMEType = "application/pdf"

// Document is the rendered artifact plus its suggested filename.
type Document struct {
	Bytes    []byte
	Filename string
	MIME     string
	Pages    int
}

type Generator interface {
	Generate(q quotation.Quotation) (Document, error)
}
