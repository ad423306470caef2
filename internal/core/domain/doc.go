// Package domain holds the vocabulary shared by tokgen's services and
// commands:
//
//   - DomainError: coded errors (ST-<AREA>-<NNNN>) for user-facing failures
//   - Encoding: the text forms a token may take (base64, hex)
//   - MaskToken: a display-safe form of an encoded token
package domain
