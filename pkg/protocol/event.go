package protocol

// Event is a DOM event the browser forwarded for a node.
//
// Wire format: uvarint Seq, string HID, string Name, value Detail.
type Event struct {
	Seq    uint64
	HID    string
	Name   string
	Detail any // CustomEvent.detail, decoded with the value codec
}

// EncodeEvent encodes an event payload.
func EncodeEvent(e *Event) []byte {
	enc := NewEncoder()
	EncodeEventTo(enc, e)
	return enc.Bytes()
}

// EncodeEventTo encodes an event payload into enc.
func EncodeEventTo(enc *Encoder, e *Event) {
	enc.WriteUvarint(e.Seq)
	enc.WriteString(e.HID)
	enc.WriteString(e.Name)
	EncodeValue(enc, e.Detail)
}

// DecodeEvent decodes an event payload.
// An event without a HID or name is rejected with ErrInvalidPayload.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)

	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	hid, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	name, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	if hid == "" || name == "" {
		return nil, ErrInvalidPayload
	}

	e := &Event{Seq: seq, HID: hid, Name: name}
	// A bridge that cannot serialize the detail sends nothing after the
	// name; treat that as a null detail.
	if d.EOF() {
		return e, nil
	}
	if e.Detail, err = DecodeValue(d); err != nil {
		return nil, err
	}
	return e, nil
}
