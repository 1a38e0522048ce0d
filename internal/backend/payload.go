package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"sort"
	"strings"
)

// Payload - тело запроса вместе с его Content-Type.
type Payload interface {
	encode() (io.Reader, string, error)
}

type jsonPayload struct{ v any }

func JSON(v any) Payload {
	return jsonPayload{v: v}
}

func (p jsonPayload) encode() (io.Reader, string, error) {
	data, err := json.Marshal(p.v)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}

type formPayload struct{ v url.Values }

func Form(v url.Values) Payload {
	return formPayload{v: v}
}

func (p formPayload) encode() (io.Reader, string, error) {
	return strings.NewReader(p.v.Encode()), "application/x-www-form-urlencoded", nil
}

type multipartPayload struct{ v url.Values }

func Multipart(v url.Values) Payload {
	return multipartPayload{v: v}
}

func (p multipartPayload) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	keys := make([]string, 0, len(p.v))
	for k := range p.v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, val := range p.v[k] {
			if err := w.WriteField(k, val); err != nil {
				return nil, "", fmt.Errorf("поле %s: %w", k, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
