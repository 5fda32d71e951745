package sealed

import (
	"testing"

	"github.com/opd-ai/sealed/crypto"
)

func benchKeys(b *testing.B) (*crypto.KeyPair, *crypto.KeyPair) {
	b.Helper()
	destination, err := crypto.GenerateKeyPair()
	if err != nil {
		b.Fatalf("key generation failed: %v", err)
	}
	sender, err := crypto.GenerateKeyPair()
	if err != nil {
		b.Fatalf("key generation failed: %v", err)
	}
	return destination, sender
}

func BenchmarkSeal(b *testing.B) {
	destination, sender := benchKeys(b)
	payload := pair{Message: "benchmark payload", Number: 9}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Seal(destination.Public, sender.Private, payload); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSealPrecomputed(b *testing.B) {
	destination, sender := benchKeys(b)
	shared := crypto.PrecomputeSharedSecret(destination.Public, sender.Private)
	payload := pair{Message: "benchmark payload", Number: 9}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := SealPrecomputed[pair](sender.Public, shared, payload); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkOpen(b *testing.B) {
	destination, sender := benchKeys(b)
	envelope, err := Seal(destination.Public, sender.Private, pair{Message: "benchmark payload", Number: 9})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		opened, err := envelope.Open(destination.Private)
		if err != nil {
			b.Fatal(err)
		}
		opened.Close()
	}
}

func BenchmarkOpenPrecomputed(b *testing.B) {
	destination, sender := benchKeys(b)
	envelope, err := Seal(destination.Public, sender.Private, pair{Message: "benchmark payload", Number: 9})
	if err != nil {
		b.Fatal(err)
	}
	shared := crypto.PrecomputeSharedSecret(sender.Public, destination.Private)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		opened, err := envelope.OpenPrecomputed(shared)
		if err != nil {
			b.Fatal(err)
		}
		opened.Close()
	}
}

func BenchmarkMarshalBinary(b *testing.B) {
	destination, sender := benchKeys(b)
	envelope, err := Seal(destination.Public, sender.Private, pair{Message: "benchmark payload", Number: 9})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := envelope.MarshalBinary(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSealLargePayload(b *testing.B) {
	destination, sender := benchKeys(b)
	blob := make([]byte, 64*1024)
	for i := range blob {
		blob[i] = byte(i)
	}
	shared := crypto.PrecomputeSharedSecret(destination.Public, sender.Private)

	b.ReportAllocs()
	b.SetBytes(int64(len(blob)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := SealPrecomputed[[]byte](sender.Public, shared, blob); err != nil {
			b.Fatal(err)
		}
	}
}
