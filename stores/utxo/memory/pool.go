package memory

import (
	"sort"

	"github.com/Diffblue-benchmarks/ScroogeCoin/model"
	"github.com/Diffblue-benchmarks/ScroogeCoin/stores/utxo"
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/dolthub/swiss"
)

const DefaultCapacity = 1024

// Pool is an in-memory utxo.Store. It is not safe for concurrent use.
type Pool struct {
	m *swiss.Map[model.UTXO, *model.Output]
}

func New(capacity int) *Pool {
	size, err := safeconversion.IntToUint32(capacity)
	if err != nil || size == 0 {
		size = DefaultCapacity
	}

	// the swiss map uses a lot less memory than the standard map
	return &Pool{
		m: swiss.NewMap[model.UTXO, *model.Output](size),
	}
}

// NewFromStore returns a pool holding a deep copy of every entry in store.
func NewFromStore(store utxo.Store) *Pool {
	if store == nil {
		return New(DefaultCapacity)
	}

	p := New(store.Count())

	store.Iterate(func(u model.UTXO, output *model.Output) bool {
		p.m.Put(u, output.Clone())
		return true
	})

	return p
}

func (p *Pool) Contains(u model.UTXO) bool {
	return p.m.Has(u)
}

func (p *Pool) Get(u model.UTXO) (*model.Output, error) {
	output, ok := p.m.Get(u)
	if !ok {
		return nil, utxo.NewNotFoundError(u)
	}

	return output, nil
}

func (p *Pool) Add(u model.UTXO, output *model.Output) {
	p.m.Put(u, output)
}

func (p *Pool) Remove(u model.UTXO) bool {
	return p.m.Delete(u)
}

func (p *Pool) Count() int {
	return p.m.Count()
}

func (p *Pool) Clone() utxo.Store {
	return NewFromStore(p)
}

func (p *Pool) Iterate(fn func(u model.UTXO, output *model.Output) bool) {
	for _, u := range p.keys() {
		output, ok := p.m.Get(u)
		if !ok {
			continue
		}

		if !fn(u, output) {
			return
		}
	}
}

// keys returns every UTXO in the pool, sorted.
func (p *Pool) keys() []model.UTXO {
	keys := make([]model.UTXO, 0, p.m.Count())

	p.m.Iter(func(u model.UTXO, _ *model.Output) bool {
		keys = append(keys, u)
		return false
	})

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})

	return keys
}
