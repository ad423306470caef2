package securetoken

// Size fixes the byte length of a token type at compile time.
//
// Implementations are zero-size marker types. Len must return the same
// positive value on every call.
type Size interface {
	Len() int
}

// Size16 selects 16-byte (128-bit) tokens.
type Size16 struct{}

// Len returns 16.
func (Size16) Len() int { return 16 }

// Size32 selects 32-byte (256-bit) tokens.
type Size32 struct{}

// Len returns 32.
func (Size32) Len() int { return 32 }

// Size64 selects 64-byte (512-bit) tokens.
type Size64 struct{}

// Len returns 64.
func (Size64) Len() int { return 64 }

// Common token types.
type (
	Token16 = Token[Size16]
	Token32 = Token[Size32]
	Token64 = Token[Size64]
)

// DefaultSize is the byte length used when a caller does not pick one.
const DefaultSize = 32

// Sizes lists the registered sizes accepted by ParseView and ViewFromBytes.
var Sizes = []int{16, 32, 64}

func sizeOf[S Size]() int {
	var s S
	return s.Len()
}
