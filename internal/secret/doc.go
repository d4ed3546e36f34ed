// Package secret obtains the HMAC key used to pseudonymize email addresses.
//
// The operator either types a key twice with echo disabled, or presses ENTER
// and gets a five word diceware passphrase drawn with crypto/rand. A typed key
// must be at least MinLength characters. The key lives in memory only; nothing
// in this package writes it to disk or to a log.
package secret
