package core

import (
	"crypto/md5"
	"fmt"
)

// MD5 is used only for cache-key sharding, never for anything security-sensitive.
func MD5(s string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(s)))
}
