package bfv

import "fmt"

// ErrNotRelinearized is returned by Decrypt when asked to decrypt a
// size-3 ciphertext. Decrypting a size-3 ciphertext directly would
// silently drop the d2 term and produce a wrong plaintext, so this
// implementation requires callers to relinearize first instead.
var ErrNotRelinearized = fmt.Errorf("bfv: ciphertext has size 3; call Relinearize before Decrypt")
