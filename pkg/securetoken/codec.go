package securetoken

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/tink-crypto/tink-go/v2/insecuresecretdataaccess"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// encoding is the text form: Base64 RawURL, safe in URLs and headers.
// Strict decoding rejects non-zero trailing bits, so each token has exactly
// one spelling.
var encoding = base64.RawURLEncoding.Strict()

// MarshalBinary returns exactly S.Len() raw bytes.
func (t Token[S]) MarshalBinary() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: token holds %d bytes", ErrInvalidLength, len(t.data))
	}
	return bytes.Clone(t.data), nil
}

// UnmarshalBinary accepts exactly S.Len() bytes. Bytes the receiver held
// before are zeroed.
//
// The bytes are trusted as-is; provenance is the transport's responsibility.
func (t *Token[S]) UnmarshalBinary(data []byte) error {
	tok, err := fromBytes[S](data)
	if err != nil {
		return err
	}
	t.Clear()
	*t = tok
	return nil
}

// MarshalText returns the Base64 RawURL encoding of the token.
//
// JSON and YAML encoders use this form.
func (t Token[S]) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: token holds %d bytes", ErrInvalidLength, len(t.data))
	}
	out := make([]byte, encoding.EncodedLen(len(t.data)))
	encoding.Encode(out, t.data)
	return out, nil
}

// UnmarshalText decodes a Base64 RawURL token of exactly S.Len() bytes.
// Bytes the receiver held before are zeroed.
func (t *Token[S]) UnmarshalText(text []byte) error {
	buf, err := decodeText(text)
	if err != nil {
		return err
	}
	defer clear(buf)

	tok, err := fromBytes[S](buf)
	if err != nil {
		return err
	}
	t.Clear()
	*t = tok
	return nil
}

// ToProto wraps a copy of the token bytes in a protobuf BytesValue.
func (t Token[S]) ToProto() *wrapperspb.BytesValue {
	return wrapperspb.Bytes(bytes.Clone(t.data))
}

// FromProto decodes a token from a protobuf BytesValue.
func FromProto[S Size](v *wrapperspb.BytesValue) (Token[S], error) {
	if v == nil {
		return Token[S]{}, fmt.Errorf("%w: nil message", ErrMalformed)
	}
	return fromBytes[S](v.GetValue())
}

// ParseView decodes a Base64 RawURL token whose size is picked from the
// decoded length. Only the sizes in Sizes are accepted.
func ParseView(text string) (View, error) {
	buf, err := decodeText([]byte(text))
	if err != nil {
		return nil, err
	}
	defer clear(buf)
	return viewFromBytes(buf)
}

// ViewFromBytes is FromBytes with the size picked from len(b).
// The same caller precondition applies.
func ViewFromBytes(b []byte, _ insecuresecretdataaccess.Token) (View, error) {
	return viewFromBytes(b)
}

func viewFromBytes(b []byte) (View, error) {
	switch len(b) {
	case Size16{}.Len():
		return newView[Size16](b)
	case Size32{}.Len():
		return newView[Size32](b)
	case Size64{}.Len():
		return newView[Size64](b)
	default:
		return nil, fmt.Errorf("%w: %d bytes is not a registered size", ErrInvalidLength, len(b))
	}
}

func newView[S Size](b []byte) (View, error) {
	tok, err := fromBytes[S](b)
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

func decodeText(text []byte) ([]byte, error) {
	buf := make([]byte, encoding.DecodedLen(len(text)))
	n, err := encoding.Decode(buf, text)
	if err != nil {
		clear(buf)
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return buf[:n], nil
}
