// Package adaptive seals small secrets at rest.
//
// A Cipher is an AEAD picked by hardware: AES-256-GCM where the CPU
// accelerates AES, ChaCha20-Poly1305 elsewhere. Keys are derived with
// HKDF-SHA256 from a random install key, and sealed values are carried
// in a printable envelope that records the algorithm:
//
//	sp1.<cipher>.<base64url(nonce|ciphertext|tag)>
//
// Usage:
//
//	key, _ := adaptive.DeriveKey(installKey, "credentials")
//	c, _ := adaptive.New(key)
//	env, _ := adaptive.Seal(c, plaintext, aad)
//	plain, _ := adaptive.Open(key, env, aad)
package adaptive
