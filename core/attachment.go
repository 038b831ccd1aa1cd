package core

import (
	"bytes"
	"io"
	"io/ioutil"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// MiB is one mebibyte, the unit of attachment size limits.
const MiB = 1024 * 1024

// Attachment is a file picked for upload. Only its metadata takes part in validation.
type Attachment struct {
	Filename  string `json:"filename"`
	MediaType string `json:"type"`
	Size      int64  `json:"size"`

	open func() (io.ReadCloser, error)
}

// NewAttachment wraps in-memory content.
func NewAttachment(filename, mediaType string, content []byte) *Attachment {
	return &Attachment{
		Filename:  filename,
		MediaType: mediaType,
		Size:      int64(len(content)),
		open: func() (io.ReadCloser, error) {
			return ioutil.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

// OpenAttachment describes the file at path. The media type comes from the extension,
// or from the first bytes of the file when the extension is unknown.
func OpenAttachment(path string) (*Attachment, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading attachment")
	}
	if fi.IsDir() {
		return nil, errors.Errorf("attachment %s is a directory", path)
	}

	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if mediaType != "" {
		if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
			mediaType = mt
		}
	} else {
		mediaType, err = sniffMediaType(path)
		if err != nil {
			return nil, err
		}
	}

	return &Attachment{
		Filename:  filepath.Base(path),
		MediaType: mediaType,
		Size:      fi.Size(),
		open:      func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

func sniffMediaType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening attachment")
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", errors.Wrap(err, "sniffing attachment")
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(head[:n]))
	return mt, nil
}

// Open returns the attachment content.
func (a *Attachment) Open() (io.ReadCloser, error) {
	if a.open == nil {
		return nil, errors.Errorf("attachment %s has no content", a.Filename)
	}
	return a.open()
}

// AttachmentRule constrains an optional attachment field.
type AttachmentRule struct {
	MediaTypes []string
	MaxSize    int64 // bytes; 0 means no limit
}

// Check returns the violated tag ("mediatype" or "maxsize"), or "" if the attachment is acceptable.
// A nil attachment is always acceptable; requiredness is up to the caller.
func (r AttachmentRule) Check(a *Attachment) string {
	if a == nil {
		return ""
	}
	if len(r.MediaTypes) > 0 {
		var allowed bool
		for _, mt := range r.MediaTypes {
			if a.MediaType == mt {
				allowed = true
				break
			}
		}
		if !allowed {
			return mediaTypeTag
		}
	}
	if r.MaxSize > 0 && a.Size > r.MaxSize {
		return maxSizeTag
	}
	return ""
}

// Report checks the attachment and reports the violation on the struct level validator.
func (r AttachmentRule) Report(sl validator.StructLevel, a *Attachment, field, structField string) {
	switch tag := r.Check(a); tag {
	case mediaTypeTag:
		sl.ReportError(a.MediaType, field, structField, tag, "")
	case maxSizeTag:
		sl.ReportError(a.Size, field, structField, tag, "")
	}
}
