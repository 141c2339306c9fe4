// Package translate normalizes inbound translation requests into a single
// prompt for the completion upstream.
package translate

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrInvalidInput marks request validation failures. Handlers map it to 400.
var ErrInvalidInput = errors.New("invalid input")

// Request is the accepted JSON body shape. Multipart uploads are folded into
// the same struct by the server before normalization.
type Request struct {
	Text string `json:"text"`
	File string `json:"file"` // base64-encoded bytes, decoded as UTF-8 text
	Lang string `json:"lang"`
}

// Input is the normalized request: one combined text plus the resolved
// target language.
type Input struct {
	Text     string // decoded file content first, then inline text, newline-joined
	LangCode string // canonical tag when parseable, raw value otherwise
	LangName string // English display name used in the prompt
}

// DecodeFile decodes the base64 file field. Strict standard encoding;
// padding errors and stray bytes are validation failures, not server faults.
func DecodeFile(file string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(file))
	if err != nil {
		return nil, fmt.Errorf("%w: file is not valid base64: %v", ErrInvalidInput, err)
	}
	return b, nil
}

// Combine joins decoded file text and inline text, file content first.
// Empty sides are dropped so a lone text or lone file never grows a
// dangling newline.
func Combine(fileText, inline string) string {
	fileText = strings.TrimSpace(fileText)
	inline = strings.TrimSpace(inline)
	switch {
	case fileText == "":
		return inline
	case inline == "":
		return fileText
	default:
		return fileText + "\n" + inline
	}
}

// ResolveLang resolves the requested target language, falling back to def
// when absent. Parseable BCP-47 tags are canonicalized and rendered as their
// English display name; anything else (plain names like "French") passes
// through verbatim since the model handles those directly.
func ResolveLang(raw, def string) (code, name string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		v = strings.TrimSpace(def)
	}
	tag, err := language.Parse(v)
	if err != nil {
		return v, v
	}
	n := display.English.Languages().Name(tag)
	if strings.TrimSpace(n) == "" {
		return tag.String(), v
	}
	return tag.String(), n
}

// Normalize validates and combines a request. maxBytes bounds the combined
// input size; zero means no bound.
func Normalize(req Request, defaultLang string, maxBytes int) (Input, error) {
	var fileBytes []byte
	if strings.TrimSpace(req.File) != "" {
		b, err := DecodeFile(req.File)
		if err != nil {
			return Input{}, err
		}
		fileBytes = b
	}
	return NormalizeBytes(fileBytes, req.Text, req.Lang, defaultLang, maxBytes)
}

// NormalizeBytes is Normalize for callers that already hold raw file bytes,
// as with multipart uploads.
func NormalizeBytes(fileBytes []byte, text, lang, defaultLang string, maxBytes int) (Input, error) {
	fileText := ""
	if len(fileBytes) > 0 {
		if !utf8.Valid(fileBytes) {
			return Input{}, fmt.Errorf("%w: file content is not valid UTF-8 text", ErrInvalidInput)
		}
		fileText = string(fileBytes)
	}

	combined := Combine(fileText, text)
	if combined == "" {
		return Input{}, fmt.Errorf("%w: no text provided: supply 'text' and/or 'file'", ErrInvalidInput)
	}
	if maxBytes > 0 && len(combined) > maxBytes {
		return Input{}, fmt.Errorf("%w: input exceeds %d bytes", ErrInvalidInput, maxBytes)
	}

	code, name := ResolveLang(lang, defaultLang)
	return Input{Text: combined, LangCode: code, LangName: name}, nil
}

// Prompt renders the completion prompt for a normalized input.
func Prompt(in Input) string {
	return fmt.Sprintf("Translate the following text to %s:\n\n%s", in.LangName, in.Text)
}
