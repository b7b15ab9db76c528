// Package cookie provides a small HTTP cookie manager with signed and
// encrypted values.
//
// The Manager is created with one or more secrets. For every secret two keys
// are derived with HKDF-SHA256: one for HMAC-SHA256 signatures and one for
// AES-256-GCM encryption. The first secret is used for writing, all of them
// for reading, which allows key rotation without invalidating live cookies.
//
//   - Set, Get, Delete: plain cookies
//   - SetSigned, GetSigned: integrity only
//   - SetEncrypted, GetEncrypted: integrity and confidentiality
//   - PopEncrypted: read an encrypted cookie and expire it in one step
//
// Usage:
//
//	man, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = man.SetEncrypted(w, "toast_flash", payload, cookie.WithMaxAge(300))
//	payload, err := man.PopEncrypted(w, r, "toast_flash")
//
// Values longer than the browser cookie limit are rejected with
// ErrValueTooLarge. Sentinel errors support errors.Is.
package cookie
