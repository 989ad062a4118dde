package ids

import (
	"sort"
	"strings"

	"craftwire.dev/wire"
)

// BlockState is one entry of the flattened block-state palette: a
// block name plus the property values that pick one of its states.
type BlockState struct {
	Name  wire.Identifier
	Props map[string]string
}

// String renders the bracketed form, e.g.
// "minecraft:grass_block[snowy=true]". Properties print in key order.
func (s BlockState) String() string {
	if len(s.Props) == 0 {
		return s.Name.String()
	}
	keys := make([]string, 0, len(s.Props))
	for k := range s.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(s.Name.String())
	b.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s.Props[k])
	}
	b.WriteByte(']')
	return b.String()
}

func simpleState(name string) BlockState {
	return BlockState{Name: wire.Identifier{Namespace: wire.DefaultNamespace, Selector: name}}
}

func propState(name string, props map[string]string) BlockState {
	return BlockState{
		Name:  wire.Identifier{Namespace: wire.DefaultNamespace, Selector: name},
		Props: props,
	}
}

// blockStates is the flattened palette; a state's id is its position.
var blockStates = []BlockState{
	simpleState("air"),
	simpleState("stone"),
	simpleState("granite"),
	simpleState("polished_granite"),
	simpleState("diorite"),
	simpleState("polished_diorite"),
	simpleState("andesite"),
	simpleState("polished_andesite"),
	propState("grass_block", map[string]string{"snowy": "true"}),
	propState("grass_block", map[string]string{"snowy": "false"}),
}

var blockStateIndex = func() map[string]int32 {
	m := make(map[string]int32, len(blockStates))
	for i, s := range blockStates {
		m[s.String()] = int32(i)
	}
	return m
}()

// BlockStateByID resolves a block-state id to its palette entry.
func BlockStateByID(id int32) (BlockState, bool) {
	if id < 0 || int(id) >= len(blockStates) {
		return BlockState{}, false
	}
	return blockStates[id], true
}

// BlockStateID resolves a palette entry to its id. The properties
// must match exactly.
func BlockStateID(s BlockState) (int32, bool) {
	id, ok := blockStateIndex[s.String()]
	return id, ok
}

// BlockStateCount reports the palette size.
func BlockStateCount() int { return len(blockStates) }
