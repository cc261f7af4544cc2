package benchmark

import (
	"encoding/json"
	"testing"

	"github.com/itchyny/gojq"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dhawalhost/laxjson"
)

func BenchmarkQueryDirect(b *testing.B) {
	doc, err := laxjson.Parse(mediumUsers)
	if err != nil {
		b.Fatal(err)
	}
	path := laxjson.MustCompilePath(`$.users[500].address.city`)

	b.Run("laxjson-path", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, ok := path.MatchFirst(doc.Root()); !ok {
				b.Fatal("no match")
			}
		}
	})
	b.Run("laxjson-chain", func(b *testing.B) {
		root := doc.Root()
		for i := 0; i < b.N; i++ {
			if root.Field("users").Item(500).Field("address").Field("city").IsNull() {
				b.Fatal("no match")
			}
		}
	})
	b.Run("gjson", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if !gjson.GetBytes(mediumUsers, "users.500.address.city").Exists() {
				b.Fatal("no match")
			}
		}
	})
}

func BenchmarkQueryRecursive(b *testing.B) {
	doc, err := laxjson.Parse(mediumUsers)
	if err != nil {
		b.Fatal(err)
	}
	path := laxjson.MustCompilePath(`$..email`)

	b.Run("laxjson-path", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if got := len(path.Match(doc.Root())); got != 1000 {
				b.Fatalf("matched %d", got)
			}
		}
	})

	// gojq equivalent of $..email, compiled once like the laxjson path.
	query, err := gojq.Parse(`[.. | objects | .email? | select(. != null)] | length`)
	if err != nil {
		b.Fatal(err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		b.Fatal(err)
	}
	var parsed any
	if err := json.Unmarshal(mediumUsers, &parsed); err != nil {
		b.Fatal(err)
	}
	b.Run("gojq", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			iter := code.Run(parsed)
			v, ok := iter.Next()
			if !ok {
				b.Fatal("no result")
			}
			if n, _ := v.(int); n != 1000 {
				b.Fatalf("matched %v", v)
			}
		}
	})
}

func BenchmarkQueryWildcard(b *testing.B) {
	doc, err := laxjson.Parse(mediumUsers)
	if err != nil {
		b.Fatal(err)
	}
	path := laxjson.MustCompilePath(`$.users[*].score`)
	b.Run("laxjson-path", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if got := len(path.Match(doc.Root())); got != 1000 {
				b.Fatalf("matched %d", got)
			}
		}
	})
	b.Run("gjson", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if got := len(gjson.GetBytes(mediumUsers, "users.#.score").Array()); got != 1000 {
				b.Fatalf("matched %d", got)
			}
		}
	})
}

func BenchmarkMutateAndSerialize(b *testing.B) {
	b.Run("laxjson", func(b *testing.B) {
		doc, err := laxjson.Parse(mediumUsers)
		if err != nil {
			b.Fatal(err)
		}
		user := doc.Root().Field("users").Item(0)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := user.Set("name", "Renamed"); err != nil {
				b.Fatal(err)
			}
			_ = doc.Bytes()
		}
	})
	b.Run("sjson", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := sjson.SetBytes(mediumUsers, "users.0.name", "Renamed"); err != nil {
				b.Fatal(err)
			}
		}
	})
}
