package protocol

// CommandOp identifies what a command asks the browser to do.
type CommandOp uint8

const (
	CommandCall       CommandOp = 0x01 // Invoke node[Name]()
	CommandListen     CommandOp = 0x02 // Start forwarding event Name
	CommandUnlisten   CommandOp = 0x03 // Stop forwarding event Name
	CommandSetAttr    CommandOp = 0x04 // node.setAttribute(Name, Value)
	CommandRemoveAttr CommandOp = 0x05 // node.removeAttribute(Name)
)

func (op CommandOp) String() string {
	switch op {
	case CommandCall:
		return "call"
	case CommandListen:
		return "listen"
	case CommandUnlisten:
		return "unlisten"
	case CommandSetAttr:
		return "setattr"
	case CommandRemoveAttr:
		return "removeattr"
	default:
		return "unknown"
	}
}

// Command is a server instruction targeting one node.
//
// Wire format: uvarint Seq, byte Op, string HID, string Name, string Value.
// Value is only meaningful for CommandSetAttr and is empty otherwise.
type Command struct {
	Seq   uint64
	Op    CommandOp
	HID   string
	Name  string
	Value string
}

// EncodeCommand encodes a command payload.
func EncodeCommand(c *Command) []byte {
	enc := NewEncoder()
	enc.WriteUvarint(c.Seq)
	enc.WriteByte(byte(c.Op))
	enc.WriteString(c.HID)
	enc.WriteString(c.Name)
	enc.WriteString(c.Value)
	return enc.Bytes()
}

// DecodeCommand decodes a command payload.
func DecodeCommand(data []byte) (*Command, error) {
	d := NewDecoder(data)

	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	op, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	if CommandOp(op) < CommandCall || CommandOp(op) > CommandRemoveAttr {
		return nil, ErrInvalidPayload
	}
	c := &Command{Seq: seq, Op: CommandOp(op)}
	if c.HID, err = d.ReadString(); err != nil {
		return nil, err
	}
	if c.Name, err = d.ReadString(); err != nil {
		return nil, err
	}
	if c.Value, err = d.ReadString(); err != nil {
		return nil, err
	}
	return c, nil
}
