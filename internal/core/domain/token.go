package domain

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/tink-crypto/tink-go/v2/insecuresecretdataaccess"

	"github.com/yndnr/securetoken-go/pkg/securetoken"
)

// Encoding names a text form of a token.
type Encoding string

const (
	EncodingBase64 Encoding = "base64"
	EncodingHex    Encoding = "hex"
)

// ParseEncoding validates an encoding name.
func ParseEncoding(s string) (Encoding, error) {
	switch e := Encoding(strings.ToLower(s)); e {
	case EncodingBase64, EncodingHex:
		return e, nil
	default:
		return "", ErrUnknownEncoding.WithDetails(fmt.Sprintf("%q (want base64 or hex)", s))
	}
}

// DetectEncoding guesses the encoding of text. Only lowercase hex of a
// supported size, as EncodeToken writes it, is taken for hex; everything
// else goes down the Base64 path, where a wrong length is reported as such.
// Callers that know the encoding should pass it to DecodeView instead.
func DetectEncoding(text string) Encoding {
	for _, n := range securetoken.Sizes {
		if len(text) == hex.EncodedLen(n) && isLowerHex(text) {
			return EncodingHex
		}
	}
	return EncodingBase64
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// EncodeToken renders tok in the given encoding.
func EncodeToken[S securetoken.Size](tok securetoken.Token[S], enc Encoding) (string, error) {
	switch enc {
	case EncodingBase64:
		text, err := tok.MarshalText()
		if err != nil {
			return "", FromTokenError(err)
		}
		return string(text), nil
	case EncodingHex:
		if !tok.IsValid() {
			return "", ErrTokenLength.WithDetails(fmt.Sprintf("token holds %d bytes", tok.Len()))
		}
		raw := tok.Bytes(insecuresecretdataaccess.Token{})
		defer clear(raw)
		return hex.EncodeToString(raw), nil
	default:
		return "", ErrUnknownEncoding.WithDetails(string(enc))
	}
}

// DecodeView parses text in the given encoding, or in the one
// DetectEncoding reports when enc is empty. Any decoded length other than
// a supported size is ErrTokenLength. The caller owns the returned view and
// should Clear it.
func DecodeView(text string, enc Encoding) (securetoken.View, error) {
	text = strings.TrimSpace(text)
	if enc == "" {
		enc = DetectEncoding(text)
	}

	switch enc {
	case EncodingBase64:
		v, err := securetoken.ParseView(text)
		return v, FromTokenError(err)
	case EncodingHex:
		raw, err := hex.DecodeString(text)
		if err != nil {
			return nil, ErrTokenMalformed.Wrap(err)
		}
		defer clear(raw)

		v, err := securetoken.ViewFromBytes(raw, insecuresecretdataaccess.Token{})
		return v, FromTokenError(err)
	default:
		return nil, ErrUnknownEncoding.WithDetails(string(enc))
	}
}

// MaskToken returns a display form of an encoded token that reveals at most
// two characters at each end. Text shorter than 32 characters, such as a
// Base64 Token16, is masked entirely.
func MaskToken(text string) string {
	if len(text) < 32 {
		return "***REDACTED***"
	}
	return text[:2] + "..." + text[len(text)-2:]
}
