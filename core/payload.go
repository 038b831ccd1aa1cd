package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	MIMEApplicationJSON = "application/json"
	MIMEMultipartForm   = "multipart/form-data"
)

type (
	// Field is one named value of a request body.
	Field struct {
		Name  string
		Value interface{}
	}

	// FilePart is one attachment of a multipart request body.
	FilePart struct {
		Field      string
		Attachment *Attachment
	}

	// Payload is a request body. It is sent as JSON unless it carries an attachment,
	// in which case it is sent as multipart form data.
	Payload struct {
		Fields []Field
		Files  []FilePart
	}
)

// Add appends a field; order is kept on the wire.
func (p *Payload) Add(name string, value interface{}) *Payload {
	p.Fields = append(p.Fields, Field{Name: name, Value: value})
	return p
}

// Attach appends an attachment; a nil attachment is ignored.
func (p *Payload) Attach(field string, a *Attachment) *Payload {
	if a != nil {
		p.Files = append(p.Files, FilePart{Field: field, Attachment: a})
	}
	return p
}

func (p Payload) IsMultipart() bool { return len(p.Files) > 0 }

func (p Payload) IsEmpty() bool { return len(p.Fields) == 0 && len(p.Files) == 0 }

// Get returns the value of the first field called name.
func (p Payload) Get(name string) (interface{}, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Encode returns the body bytes and their content type.
func (p Payload) Encode() ([]byte, string, error) {
	if p.IsMultipart() {
		return p.encodeMultipart()
	}
	return p.encodeJSON()
}

func (p Payload) encodeJSON() ([]byte, string, error) {
	obj := make(map[string]interface{}, len(p.Fields))
	for _, f := range p.Fields {
		obj[f.Name] = f.Value
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return nil, "", errors.Wrap(err, "encoding json payload")
	}
	return b, MIMEApplicationJSON, nil
}

func (p Payload) encodeMultipart() ([]byte, string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	for _, f := range p.Fields {
		if f.Value == nil {
			continue
		}
		if err := w.WriteField(f.Name, formValue(f.Value)); err != nil {
			return nil, "", errors.Wrapf(err, "writing field %s", f.Name)
		}
	}

	for _, fp := range p.Files {
		if err := writeFilePart(w, fp); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "closing multipart writer")
	}
	return body.Bytes(), w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, fp FilePart) error {
	mediaType := fp.Attachment.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(fp.Field), escapeQuotes(fp.Attachment.Filename)))
	h.Set("Content-Type", mediaType)

	part, err := w.CreatePart(h)
	if err != nil {
		return errors.Wrapf(err, "creating %s part", fp.Field)
	}
	r, err := fp.Attachment.Open()
	if err != nil {
		return errors.Wrapf(err, "opening %s", fp.Attachment.Filename)
	}
	defer r.Close()
	if _, err := io.Copy(part, r); err != nil {
		return errors.Wrapf(err, "copying %s", fp.Attachment.Filename)
	}
	return nil
}

func formValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprint(v)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
