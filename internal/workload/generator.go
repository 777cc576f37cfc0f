package workload

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// Generator yields a random GET/PUT mix over a fixed keyspace.
//
// Keys are drawn uniformly, so with keyspace > capacity the steady-state hit
// rate approaches capacity/keyspace. A non-zero seed makes the stream
// reproducible; seed 0 picks a random one.
type Generator struct {
	faker        *gofakeit.Faker
	keys         []string
	readPermille int
}

func NewGenerator(seed uint64, keyspace int, readRatio float64) *Generator {
	if keyspace < 1 {
		keyspace = 1
	}
	f := gofakeit.New(seed)

	keys := make([]string, keyspace)
	for i := range keys {
		// The index suffix keeps keys distinct; the letters are only flavour.
		keys[i] = fmt.Sprintf("%s-%d", strings.ToLower(f.LetterN(4)), i)
	}

	return &Generator{
		faker:        f,
		keys:         keys,
		readPermille: int(readRatio * 1000),
	}
}

// Next returns the next operation of the stream.
func (g *Generator) Next() Op {
	key := g.keys[g.faker.Number(0, len(g.keys)-1)]
	if g.faker.Number(0, 999) < g.readPermille {
		return Op{Kind: OpGet, Key: key}
	}
	return Op{Kind: OpPut, Key: key, Value: g.faker.ProductName()}
}

// Take returns the next n operations.
func (g *Generator) Take(n int) []Op {
	ops := make([]Op, n)
	for i := range ops {
		ops[i] = g.Next()
	}
	return ops
}

// Keyspace returns the number of distinct keys the generator draws from.
func (g *Generator) Keyspace() int {
	return len(g.keys)
}
