// Package wire implements the brokerage's framed TCP protocol: a 4-byte
// big-endian length prefix followed by a 1-byte message type and a
// type-specific payload (spec.md §6). It is the one piece of transport the
// root spec describes but treats as an external collaborator ("the wire
// encoder/decoder of protocol messages... assumed to exist"); this module
// supplies a real implementation so the coordinator client and daemon are
// runnable end to end.
//
// The framing style — a length-prefixed header read with encoding/binary,
// one frame per logical request or response — mirrors the hand-rolled
// Kafka broker protocol in the retrieval pack's franz-go reference file,
// the only example in the pack that talks a raw binary protocol over a
// plain net.Conn rather than through a generated RPC stub.
package wire
