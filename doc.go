// Package sealed implements typed authenticated encryption: a generic,
// serializable envelope that binds an encrypted payload to a sender and
// receiver keypair.
//
// A [Sealed] value is:
//
//   - Encrypted. Only the source or destination private key can
//     ascertain the contents.
//   - Authenticated. Envelopes are unforgeable except by the holder of
//     the source or destination private key.
//   - Serializable. The envelope itself marshals to a fixed canonical
//     byte layout, and nests inside other payloads.
//
// The type parameter records, at compile time only, which logical
// payload type an envelope was sealed with; it occupies no bytes on the
// wire. Give each protocol message its own payload type and the
// compiler refuses to open an envelope as anything else.
//
// # Getting Started
//
// Seal a value for a destination, open it with the destination's
// secret key, and deserialize:
//
//	destination, err := crypto.GenerateKeyPair()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sender, err := crypto.GenerateKeyPair()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	type Greeting struct {
//	    Message string
//	    Count   uint8
//	}
//
//	envelope, err := sealed.Seal(destination.Public, sender.Private,
//	    Greeting{Message: "to encrypt", Count: 9})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opened, err := envelope.Open(destination.Private)
//	if err != nil {
//	    log.Fatal(err) // wrong key, corruption, or tampering
//	}
//	defer opened.Close()
//
//	greeting, err := opened.Deserialize()
//
// # Protocol Evolution
//
// Because sealing is generic over any encodable payload, a protocol
// can change its message schema without touching the encryption layer:
//
//	// Packet type is declared
//	type Packet = sealed.Sealed[ChatMessage]
//
//	// Protocol is upgraded to support batch messages
//	type Packet = sealed.Sealed[[]ChatMessage]
//
//	// A relay wraps packets for forwarding
//	type RelayRequest struct {
//	    Destination string
//	    Payload     sealed.Sealed[[]ChatMessage]
//	}
//	type EncryptedRelayRequest = sealed.Sealed[RelayRequest]
//
// # Security Properties
//
// This package does not provide forward secrecy: an envelope reveals
// its plaintext if either party's secret key is later compromised.
// Protocols needing forward secrecy can layer independently keyed
// envelopes. Decrypted plaintext is held in an [Opened] value whose
// Close method zeroes the buffer, a best-effort mitigation against
// plaintext lingering in memory.
package sealed
