package format

import "github.com/vmihailenco/msgpack/v5"

// MsgPack is a compact binary charset file format, preferred for store
// values where nobody reads the bytes by hand.
type MsgPack struct{}

// Marshal serializes f to MessagePack bytes.
func (MsgPack) Marshal(f *File) ([]byte, error) {
	return msgpack.Marshal(f)
}

// Unmarshal deserializes MessagePack bytes into a File.
func (MsgPack) Unmarshal(data []byte) (*File, error) {
	var f File
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Name returns "msgpack".
func (MsgPack) Name() string { return "msgpack" }

// Extensions returns the extensions served by the MsgPack format.
func (MsgPack) Extensions() []string { return []string{"msgpack", "mp"} }
