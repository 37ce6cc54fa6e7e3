package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
)

// MessageType identifies the payload that follows a frame's length prefix.
type MessageType byte

const (
	// MsgRequestWorkerList carries no payload. The coordinator responds
	// with MsgWorkerList.
	MsgRequestWorkerList MessageType = 1

	// MsgWorkerList carries a count-prefixed sequence of packed 32-bit
	// IPv4 addresses. Sent only by the coordinator, in reply to
	// MsgRequestWorkerList.
	MsgWorkerList MessageType = 2

	// MsgSetWorkerStatus carries a single byte: 0 or 1. No response is
	// sent or awaited.
	MsgSetWorkerStatus MessageType = 3
)

// maxFrameLen bounds the length prefix so a corrupt or hostile peer can't
// make ReadFrame allocate an unbounded buffer. A worker list of this many
// entries is already far beyond any real build farm.
const maxFrameLen = 4 + 1_000_000*4

// WriteFrame writes a single [4-byte length][1-byte type][payload] frame.
// The length covers the type byte and payload, not itself.
func WriteFrame(w io.Writer, msgType MessageType, payload []byte) error {
	header := make([]byte, 5)
	binary.BigEndian.PutUint32(header[0:4], uint32(1+len(payload)))
	header[4] = byte(msgType)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("wire: write frame header: %w", err)
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("wire: write frame payload: %w", err)
		}
	}
	return nil
}

// ReadFrame reads a single frame and returns its message type and payload.
func ReadFrame(r io.Reader) (MessageType, []byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return 0, nil, fmt.Errorf("wire: read frame length: %w", err)
	}
	frameLen := binary.BigEndian.Uint32(lenBuf[:])
	if frameLen == 0 {
		return 0, nil, fmt.Errorf("wire: empty frame (missing type byte)")
	}
	if frameLen > maxFrameLen {
		return 0, nil, fmt.Errorf("wire: frame length %d exceeds maximum %d", frameLen, maxFrameLen)
	}

	body := make([]byte, frameLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return 0, nil, fmt.Errorf("wire: read frame body: %w", err)
	}

	return MessageType(body[0]), body[1:], nil
}

// EncodeWorkerList packs a sequence of IPv4 addresses into a MsgWorkerList
// payload: a 4-byte count followed by that many 4-byte addresses.
func EncodeWorkerList(addrs []uint32) []byte {
	payload := make([]byte, 4+4*len(addrs))
	binary.BigEndian.PutUint32(payload[0:4], uint32(len(addrs)))
	for i, addr := range addrs {
		binary.BigEndian.PutUint32(payload[4+4*i:8+4*i], addr)
	}
	return payload
}

// DecodeWorkerList is the inverse of EncodeWorkerList.
func DecodeWorkerList(payload []byte) ([]uint32, error) {
	if len(payload) < 4 {
		return nil, fmt.Errorf("wire: worker list payload too short: %d bytes", len(payload))
	}
	count := binary.BigEndian.Uint32(payload[0:4])
	want := 4 + 4*int(count)
	if len(payload) != want {
		return nil, fmt.Errorf("wire: worker list payload length mismatch: got %d, want %d", len(payload), want)
	}

	addrs := make([]uint32, count)
	for i := range addrs {
		addrs[i] = binary.BigEndian.Uint32(payload[4+4*i : 8+4*i])
	}
	return addrs, nil
}

// EncodeBool packs a single boolean into a MsgSetWorkerStatus payload.
func EncodeBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeBool is the inverse of EncodeBool.
func DecodeBool(payload []byte) (bool, error) {
	if len(payload) != 1 {
		return false, fmt.Errorf("wire: bool payload must be exactly 1 byte, got %d", len(payload))
	}
	return payload[0] != 0, nil
}

// IPToUint32 packs a dotted-quad IPv4 address into its big-endian uint32
// representation, as carried in MsgWorkerList frames.
func IPToUint32(ip string) (uint32, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return 0, fmt.Errorf("wire: invalid IPv4 address %q", ip)
	}
	v4 := parsed.To4()
	if v4 == nil {
		return 0, fmt.Errorf("wire: address %q is not IPv4", ip)
	}
	return binary.BigEndian.Uint32(v4), nil
}

// Uint32ToIP is the inverse of IPToUint32, returning the dotted-quad form.
func Uint32ToIP(addr uint32) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], addr)
	return net.IP(b[:]).String()
}
