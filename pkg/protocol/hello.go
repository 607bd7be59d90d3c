package protocol

// Version is the protocol version spoken by this package.
const (
	VersionMajor = 1
	VersionMinor = 0
)

// HelloStatus is the server's verdict on a client hello.
type HelloStatus uint8

const (
	HelloOK              HelloStatus = 0x00
	HelloVersionMismatch HelloStatus = 0x01
	HelloInvalidFormat   HelloStatus = 0x06
	HelloInternalError   HelloStatus = 0x08
)

func (hs HelloStatus) String() string {
	switch hs {
	case HelloOK:
		return "OK"
	case HelloVersionMismatch:
		return "VersionMismatch"
	case HelloInvalidFormat:
		return "InvalidFormat"
	case HelloInternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// ClientHello opens a session. Path is the page the bridge runs on.
//
// Wire format: byte Major, byte Minor, string Path.
type ClientHello struct {
	Major uint8
	Minor uint8
	Path  string
}

// ServerHello answers a ClientHello.
//
// Wire format: byte Status, string SessionID, uint64 ServerTime (Unix ms).
type ServerHello struct {
	Status     HelloStatus
	SessionID  string
	ServerTime uint64
}

// EncodeClientHello encodes a client hello payload.
func EncodeClientHello(h *ClientHello) []byte {
	e := NewEncoder()
	e.WriteByte(h.Major)
	e.WriteByte(h.Minor)
	e.WriteString(h.Path)
	return e.Bytes()
}

// DecodeClientHello decodes a client hello payload.
func DecodeClientHello(data []byte) (*ClientHello, error) {
	d := NewDecoder(data)
	h := &ClientHello{}
	var err error
	if h.Major, err = d.ReadByte(); err != nil {
		return nil, err
	}
	if h.Minor, err = d.ReadByte(); err != nil {
		return nil, err
	}
	if h.Path, err = d.ReadString(); err != nil {
		return nil, err
	}
	return h, nil
}

// Compatible reports whether the client speaks this protocol version.
// Minor versions are backwards compatible.
func (h *ClientHello) Compatible() bool {
	return h.Major == VersionMajor
}

// EncodeServerHello encodes a server hello payload.
func EncodeServerHello(h *ServerHello) []byte {
	e := NewEncoder()
	e.WriteByte(byte(h.Status))
	e.WriteString(h.SessionID)
	e.WriteUint64(h.ServerTime)
	return e.Bytes()
}

// DecodeServerHello decodes a server hello payload.
func DecodeServerHello(data []byte) (*ServerHello, error) {
	d := NewDecoder(data)
	status, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	h := &ServerHello{Status: HelloStatus(status)}
	if h.SessionID, err = d.ReadString(); err != nil {
		return nil, err
	}
	if h.ServerTime, err = d.ReadUint64(); err != nil {
		return nil, err
	}
	return h, nil
}
