package emailsend

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type mimePart struct {
	header textproto.MIMEHeader
	body   []byte
}

// buildMIME renders msg as an RFC 5322 message. Text and HTML bodies become
// multipart/alternative, attachments wrap everything in multipart/mixed.
func buildMIME(msg *Message, messageID string, date time.Time) ([]byte, error) {
	var buf bytes.Buffer

	writeHeader(&buf, "From", msg.From)
	writeHeader(&buf, "To", strings.Join(msg.To, ", "))
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&buf, "Date", date.Format(time.RFC1123Z))
	writeHeader(&buf, "Message-ID", messageID)
	writeHeader(&buf, "MIME-Version", "1.0")

	keys := make([]string, 0, len(msg.Headers))
	for k := range msg.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeHeader(&buf, k, msg.Headers[k])
	}

	content, err := contentPart(msg)
	if err != nil {
		return nil, err
	}

	if len(msg.Attachments) == 0 {
		writePart(&buf, content)
		return buf.Bytes(), nil
	}

	mixed := multipart.NewWriter(&buf)
	writeHeader(&buf, "Content-Type", "multipart/mixed; boundary="+mixed.Boundary())
	buf.WriteString("\r\n")

	if err := appendPart(mixed, content); err != nil {
		return nil, err
	}
	for _, a := range msg.Attachments {
		part, err := attachmentPart(a)
		if err != nil {
			return nil, err
		}
		if err := appendPart(mixed, part); err != nil {
			return nil, err
		}
	}
	if err := mixed.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

func writePart(buf *bytes.Buffer, p mimePart) {
	keys := make([]string, 0, len(p.header))
	for k := range p.header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeHeader(buf, k, p.header.Get(k))
	}
	buf.WriteString("\r\n")
	buf.Write(p.body)
}

func appendPart(w *multipart.Writer, p mimePart) error {
	pw, err := w.CreatePart(p.header)
	if err != nil {
		return fmt.Errorf("create part: %w", err)
	}
	_, err = pw.Write(p.body)
	return err
}

func textPart(contentType, body string) (mimePart, error) {
	var b bytes.Buffer
	qp := quotedprintable.NewWriter(&b)
	if _, err := qp.Write([]byte(body)); err != nil {
		return mimePart{}, fmt.Errorf("encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return mimePart{}, fmt.Errorf("encode body: %w", err)
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType+"; charset=UTF-8")
	h.Set("Content-Transfer-Encoding", "quoted-printable")
	return mimePart{header: h, body: b.Bytes()}, nil
}

func contentPart(msg *Message) (mimePart, error) {
	switch {
	case msg.HTML != "" && msg.Text != "":
		text, err := textPart("text/plain", msg.Text)
		if err != nil {
			return mimePart{}, err
		}
		html, err := textPart("text/html", msg.HTML)
		if err != nil {
			return mimePart{}, err
		}
		var b bytes.Buffer
		alt := multipart.NewWriter(&b)
		for _, p := range []mimePart{text, html} {
			if err := appendPart(alt, p); err != nil {
				return mimePart{}, err
			}
		}
		if err := alt.Close(); err != nil {
			return mimePart{}, fmt.Errorf("close multipart: %w", err)
		}
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", "multipart/alternative; boundary="+alt.Boundary())
		return mimePart{header: h, body: b.Bytes()}, nil
	case msg.HTML != "":
		return textPart("text/html", msg.HTML)
	default:
		return textPart("text/plain", msg.Text)
	}
}

func attachmentPart(a Attachment) (mimePart, error) {
	content := a.Content
	if content == nil {
		data, err := os.ReadFile(a.Path)
		if err != nil {
			return mimePart{}, fmt.Errorf("read attachment %s: %w", a.Filename, err)
		}
		content = data
	}

	contentType := a.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(a.Filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	h.Set("Content-Transfer-Encoding", "base64")
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))

	encoded := base64.StdEncoding.EncodeToString(content)
	var b bytes.Buffer
	for len(encoded) > 76 {
		b.WriteString(encoded[:76])
		b.WriteString("\r\n")
		encoded = encoded[76:]
	}
	b.WriteString(encoded)
	return mimePart{header: h, body: b.Bytes()}, nil
}
