package field

// Field is a parsed header field. The Base holds the semantic name and body
// and the Raw, when present, holds the original bytes. Changing the name or
// body through the Base does not alter the Raw, so the original bytes keep
// winning on output until the Raw is cleared with SetRaw(nil).
type Field struct {
	Base
	raw *Raw
}

// New constructs a new field with no raw value.
func New(name, body string) *Field {
	return &Field{Base: Base{name, body}}
}

// Name returns the unfolded name of the field.
func (f *Field) Name() string {
	return f.Base.Name()
}

// Body returns the unfolded body of the field. Encoded-words are left as-is.
func (f *Field) Body() string {
	return f.Base.Body()
}

// Raw returns the original bytes of the field or nil if the field was not
// parsed from input.
func (f *Field) Raw() *Raw {
	return f.raw
}

// SetRaw replaces the raw value of the field. The colon is located
// automatically. Passing nil removes the raw value.
func (f *Field) SetRaw(b []byte) {
	if b == nil {
		f.raw = nil
		return
	}

	colon := len(b)
	for i, c := range b {
		if c == ':' {
			colon = i
			break
		}
	}
	f.raw = &Raw{b, colon}
}

// String returns the raw field if one is set or a newly formatted field.
func (f *Field) String() string {
	if f.raw != nil {
		return f.raw.String()
	}
	return f.Base.String()
}

// Bytes returns the raw field if one is set or a newly formatted field.
func (f *Field) Bytes() []byte {
	if f.raw != nil {
		return f.raw.Bytes()
	}
	return f.Base.Bytes()
}
