// Package benchmark pits the laxjson model against other JSON libraries
// on shared generated datasets.
package benchmark

import (
	"fmt"
	"strings"
)

// GenerateUsers produces a strict-JSON document with n user records under
// a "users" array plus a metadata block. Deterministic so every library
// sees identical input.
func GenerateUsers(n int) []byte {
	var b strings.Builder
	b.Grow(n * 160)
	b.WriteString(`{"users":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b,
			`{"id":%d,"name":"User %d","email":"user%d@example.com","active":%v,`+
				`"score":%d.%d,"tags":["t%d","t%d"],"address":{"city":"City %d","zip":"%05d"}}`,
			i, i, i, i%3 != 0, i%100, i%10, i%7, i%5, i%50, i)
	}
	fmt.Fprintf(&b, `],"metadata":{"count":%d,"source":"generator"}}`, n)
	return []byte(b.String())
}

var (
	smallUsers  = GenerateUsers(10)
	mediumUsers = GenerateUsers(1000)
	largeUsers  = GenerateUsers(50000)
)
