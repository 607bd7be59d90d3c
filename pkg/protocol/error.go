package protocol

// ErrorCode identifies the type of a reported error.
type ErrorCode uint16

const (
	ErrUnknown       ErrorCode = 0x0000
	ErrInvalidFrame  ErrorCode = 0x0001 // Malformed frame
	ErrInvalidEvent  ErrorCode = 0x0002 // Malformed event
	ErrUnknownNode   ErrorCode = 0x0003 // No node for HID
	ErrHandlerPanic  ErrorCode = 0x0004 // Callback panicked
	ErrCommandFailed ErrorCode = 0x0005 // Browser could not run a command
	ErrServerError   ErrorCode = 0x0100 // Internal server error
)

func (ec ErrorCode) String() string {
	switch ec {
	case ErrInvalidFrame:
		return "InvalidFrame"
	case ErrInvalidEvent:
		return "InvalidEvent"
	case ErrUnknownNode:
		return "UnknownNode"
	case ErrHandlerPanic:
		return "HandlerPanic"
	case ErrCommandFailed:
		return "CommandFailed"
	case ErrServerError:
		return "ServerError"
	default:
		return "Unknown"
	}
}

// ErrorMessage reports an error to the peer.
//
// Wire format: uint16 Code, string Message, bool Fatal, uvarint Seq.
// Seq names the command that failed when the browser reports
// ErrCommandFailed and is zero otherwise.
type ErrorMessage struct {
	Code    ErrorCode
	Message string
	Fatal   bool
	Seq     uint64
}

// EncodeErrorMessage encodes an error payload.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteUint16(uint16(em.Code))
	e.WriteString(em.Message)
	e.WriteBool(em.Fatal)
	e.WriteUvarint(em.Seq)
	return e.Bytes()
}

// DecodeErrorMessage decodes an error payload. Seq is optional on the wire.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	code, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	message, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	fatal, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	em := &ErrorMessage{Code: ErrorCode(code), Message: message, Fatal: fatal}
	if !d.EOF() {
		if em.Seq, err = d.ReadUvarint(); err != nil {
			return nil, err
		}
	}
	return em, nil
}

// NewError creates a non-fatal ErrorMessage.
func NewError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message}
}

// NewFatalError creates a fatal ErrorMessage.
func NewFatalError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message, Fatal: true}
}

// Error implements the error interface.
func (em *ErrorMessage) Error() string {
	if em.Fatal {
		return "fatal: " + em.Code.String() + ": " + em.Message
	}
	return em.Code.String() + ": " + em.Message
}
