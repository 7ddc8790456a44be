package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NumericCode returns a zero-padded numeric code of n digits drawn from
// crypto/rand. OTP codes are secrets, so math/rand is not good enough here.
func NumericCode(n int) (string, error) {
	if n <= 0 {
		n = 6
	}
	max := big.NewInt(1)
	for i := 0; i < n; i++ {
		max.Mul(max, big.NewInt(10))
	}
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, v), nil
}
