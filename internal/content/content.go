// Package content assembles raw user input into the multimodal message
// format the agent API accepts.
package content

import (
	"encoding/base64"
	"fmt"

	"github.com/roastboard/roastboard/pkg/models"
)

// DefaultImageMIME is used when an attachment carries no usable MIME type.
const DefaultImageMIME = "image/png"

// Assemble builds a MultimodalMessage from text and an ordered list of
// image attachments. Text, when present, always comes first; image parts
// keep attachment order. Both inputs empty yields an empty message — the
// caller is responsible for rejecting that case upstream.
//
// No size limits are applied here; compressing oversized images is the
// job of the upload pre-processing step.
func Assemble(text string, attachments []models.Attachment) models.MultimodalMessage {
	msg := make(models.MultimodalMessage, 0, len(attachments)+1)

	if text != "" {
		msg = append(msg, models.ContentPart{Type: models.PartText, Text: text})
	}

	for _, a := range attachments {
		msg = append(msg, models.ContentPart{
			Type:     models.PartImageURL,
			ImageURL: &models.ImageURL{URL: DataURI(a)},
		})
	}

	return msg
}

// DataURI encodes an attachment as a self-describing data URI
// (data:<mime>;base64,<payload>) so the message is transport-self-contained.
func DataURI(a models.Attachment) string {
	mime := a.MIMEType
	if mime == "" {
		mime = DefaultImageMIME
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(a.Data))
}
