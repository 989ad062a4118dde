// Package ids carries the static registry tables the protocol refers
// to by numeric id: items, block states and painting variants. Ids
// are positions in each palette and must not be reordered.
package ids

import (
	"fmt"

	"craftwire.dev/wire"
)

// Registry maps between a palette of identifiers and their numeric
// ids.
type Registry struct {
	name    string
	palette []string
	index   map[string]int32
}

func newRegistry(name string, palette []string) *Registry {
	r := &Registry{
		name:    name,
		palette: palette,
		index:   make(map[string]int32, len(palette)),
	}
	for i, entry := range palette {
		if _, dup := r.index[entry]; dup {
			panic(fmt.Sprintf("ids: duplicate %s entry %q", name, entry))
		}
		r.index[entry] = int32(i)
	}
	return r
}

// Name reports the registry's identifier-form name.
func (r *Registry) Name() string { return r.name }

// Len reports the palette size.
func (r *Registry) Len() int { return len(r.palette) }

// ByID resolves a numeric id to its identifier.
func (r *Registry) ByID(id int32) (wire.Identifier, bool) {
	if id < 0 || int(id) >= len(r.palette) {
		return wire.Identifier{}, false
	}
	return wire.Identifier{Namespace: wire.DefaultNamespace, Selector: r.palette[id]}, true
}

// ID resolves an identifier to its numeric id. Only the default
// namespace is populated.
func (r *Registry) ID(ident wire.Identifier) (int32, bool) {
	if ident.Namespace != wire.DefaultNamespace {
		return 0, false
	}
	id, ok := r.index[ident.Selector]
	return id, ok
}

// Items is the item registry.
var Items = newRegistry("minecraft:item", []string{
	"air",
	"stone",
	"granite",
	"polished_granite",
	"diorite",
	"polished_diorite",
	"andesite",
	"polished_andesite",
	"deepslate",
	"cobbled_deepslate",
	"polished_deepslate",
	"calcite",
	"tuff",
	"dripstone_block",
})

// Paintings is the painting variant registry.
var Paintings = newRegistry("minecraft:painting_variant", []string{
	"kebab",
	"aztec",
	"alban",
	"aztec2",
	"bomb",
	"plant",
	"wasteland",
	"pool",
	"courbet",
	"sea",
	"sunset",
	"creebet",
	"wanderer",
	"graham",
	"match",
	"bust",
	"stage",
	"void",
	"skull_and_roses",
	"wither",
	"fighters",
	"pointer",
	"pigscene",
	"burning_skull",
	"skeleton",
	"donkey_kong",
})
