package bgg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// MarkupDecoder decodes a raw markup document into a tree of Go values.
// It is the only place the normalizer touches the wire format, so tests can
// substitute their own.
type MarkupDecoder interface {
	Decode(raw []byte, v any) error
}

// XMLDecoder is the default MarkupDecoder, backed by encoding/xml.
// Documents declaring a non-UTF-8 encoding are transcoded on the fly.
type XMLDecoder struct{}

// Decode implements MarkupDecoder. Anything after the root element other than
// whitespace, comments and processing instructions is an error.
func (XMLDecoder) Decode(raw []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(v); err != nil {
		return err
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) > 0 {
				return fmt.Errorf("unexpected text after root element at offset %d", dec.InputOffset())
			}
		default:
			return fmt.Errorf("unexpected %T after root element at offset %d", tok, dec.InputOffset())
		}
	}
}

// parseXML decodes body into a value of type T, wrapping failures as ParseError.
func parseXML[T any](d MarkupDecoder, body []byte, errMsg string) (*T, error) {
	var result T
	if err := d.Decode(body, &result); err != nil {
		return nil, newParseError(errMsg, err)
	}
	return &result, nil
}
