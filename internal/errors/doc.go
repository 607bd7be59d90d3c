// Package errors provides coded, structured errors for mwc.
//
// Every error carries a short code (e.g., "M101") that maps to a registered
// template with a category, a one-line message and a longer explanation.
// Errors wrap their cause so callers can keep using errors.Is and errors.As
// against the sentinels exported by the packages that own them.
//
// # Error Codes
//
//   - M1xx: handle misuse (imperative calls outside the mounted window)
//   - M2xx: custom element loading
//   - M3xx: configuration
//   - M4xx: module fingerprinting
//
// # Usage
//
//	err := errors.New("M101").
//	    WithDetail("focus called on dialog handle").
//	    Wrap(dialog.ErrUseBeforeMount)
//
//	fmt.Println(err.Format())
package errors
