package content_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/roastboard/roastboard/internal/content"
	"github.com/roastboard/roastboard/pkg/models"
)

func TestAssemble_TextOnly(t *testing.T) {
	msg := content.Assemble("roast me", nil)

	if len(msg) != 1 {
		t.Fatalf("Assemble() returned %d parts, want 1", len(msg))
	}
	if msg[0].Type != models.PartText || msg[0].Text != "roast me" {
		t.Errorf("part = %+v, want text part", msg[0])
	}
}

func TestAssemble_TextAndImages(t *testing.T) {
	attachments := []models.Attachment{
		{Data: []byte("first"), MIMEType: "image/jpeg"},
		{Data: []byte("second"), MIMEType: "image/webp"},
	}

	msg := content.Assemble("context", attachments)

	if len(msg) != 3 {
		t.Fatalf("Assemble() returned %d parts, want 3", len(msg))
	}
	if msg[0].Type != models.PartText {
		t.Errorf("first part type = %q, want text", msg[0].Type)
	}
	// Image parts preserve attachment order.
	if !strings.HasPrefix(msg[1].ImageURL.URL, "data:image/jpeg;base64,") {
		t.Errorf("second part URL = %q, want jpeg data URI", msg[1].ImageURL.URL)
	}
	if !strings.HasPrefix(msg[2].ImageURL.URL, "data:image/webp;base64,") {
		t.Errorf("third part URL = %q, want webp data URI", msg[2].ImageURL.URL)
	}
}

func TestAssemble_ImagesOnly(t *testing.T) {
	msg := content.Assemble("", []models.Attachment{{Data: []byte{0x1}, MIMEType: "image/png"}})

	if len(msg) != 1 {
		t.Fatalf("Assemble() returned %d parts, want 1", len(msg))
	}
	if msg[0].Type != models.PartImageURL {
		t.Errorf("part type = %q, want image_url", msg[0].Type)
	}
}

func TestAssemble_Empty(t *testing.T) {
	msg := content.Assemble("", nil)
	if len(msg) != 0 {
		t.Errorf("Assemble() returned %d parts, want 0", len(msg))
	}
}

func TestDataURI_DefaultsMIMEType(t *testing.T) {
	uri := content.DataURI(models.Attachment{Data: []byte("blob")})
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("DataURI() = %q, want default image/png", uri)
	}
}

func TestDataURI_Payload(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	uri := content.DataURI(models.Attachment{Data: data, MIMEType: "image/gif"})

	want := "data:image/gif;base64," + base64.StdEncoding.EncodeToString(data)
	if uri != want {
		t.Errorf("DataURI() = %q, want %q", uri, want)
	}
}
