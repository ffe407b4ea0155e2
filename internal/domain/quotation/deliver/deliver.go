// Package deliver decides how a rendered document is handed to the caller:
// as a shareable file with a caption when the platform reports a native share
// capability, or as a direct open/download otherwise.
package deliver

import (
	"fmt"

	"wm-ferretero/go_backend/internal/domain/quotation"
	"wm-ferretero/go_backend/internal/domain/quotation/pdf"
)

// Delivery is the handoff instruction for one document.
type Delivery struct {
	Filename    string
	MIME        string
	Disposition string // Content-Disposition value
	ShareTitle  string
	ShareText   string
}

// For builds the handoff for a document. canShare comes from the platform
// capability detector (an external collaborator); a user cancelling the share
// dialog afterwards is informational, never an error.
func For(q quotation.Quotation, doc pdf.Document, canShare bool) Delivery {
	d := Delivery{
		Filename: doc.Filename,
		MIME:     doc.MIME,
	}
	if canShare {
		d.Disposition = fmt.Sprintf("attachment; filename=%q", doc.Filename)
		d.ShareTitle = "Cotización " + numberOrDraft(q)
		d.ShareText = "Adjunto la cotización para " + q.ClientName + "."
		return d
	}
	d.Disposition = fmt.Sprintf("inline; filename=%q", doc.Filename)
	return d
}

func numberOrDraft(q quotation.Quotation) string {
	if q.Number == "" {
		return "BORRADOR"
	}
	return q.Number
}
