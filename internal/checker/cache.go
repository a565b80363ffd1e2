package checker

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"surge/internal/ast"
	"surge/internal/symbols"
	"surge/internal/types"
)

// cacheSchemaVersion guards against decoding a blob written by an earlier,
// incompatible cache layout; bump whenever cacheBlob's shape changes.
const cacheSchemaVersion uint16 = 1

// cacheBlob is the on-disk shape of one file's incremental cache: the
// node_types/symbol_types memoization tables CheckFile populated, keyed by
// content hash so a later run over byte-identical source can skip
// re-deriving them. Map keys don't round-trip cleanly through msgpack the
// way a plain struct/slice does, so each cache is flattened to an entry
// list on save and rebuilt into a map on load.
type cacheBlob struct {
	Schema      uint16
	ContentHash [32]byte
	NodeTypes   []nodeTypeEntry
	SymbolTypes []symbolTypeEntry
}

type nodeTypeEntry struct {
	Expr  uint32
	Scope uint32
	Type  uint32
}

type symbolTypeEntry struct {
	Symbol uint32
	Type   uint32
}

// SaveCache serializes this CheckerState's node_types/symbol_types
// memoization tables, stamped with contentHash so LoadCache can refuse a
// blob that no longer matches the file it was built from. Scope/expr IDs
// are only meaningful replayed against the identical arena layout a
// deterministic re-parse of the same bytes reproduces — the same
// assumption the teacher's own DiskCache makes about ModuleHash-keyed
// artifacts.
func (cs *CheckerState) SaveCache(w io.Writer, contentHash [32]byte) error {
	blob := cacheBlob{
		Schema:      cacheSchemaVersion,
		ContentHash: contentHash,
		NodeTypes:   make([]nodeTypeEntry, 0, len(cs.nodeTypes)),
		SymbolTypes: make([]symbolTypeEntry, 0, len(cs.symbolTypes)),
	}
	for key, t := range cs.nodeTypes {
		blob.NodeTypes = append(blob.NodeTypes, nodeTypeEntry{
			Expr:  uint32(key.Expr),
			Scope: uint32(key.Scope),
			Type:  uint32(t),
		})
	}
	for sym, t := range cs.symbolTypes {
		blob.SymbolTypes = append(blob.SymbolTypes, symbolTypeEntry{
			Symbol: uint32(sym),
			Type:   uint32(t),
		})
	}
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(&blob); err != nil {
		return fmt.Errorf("checker: encode cache: %w", err)
	}
	return nil
}

// LoadCache deserializes a cache blob written by SaveCache and repopulates
// node_types/symbol_types, reporting ok=false (without error) when the
// blob's content hash doesn't match, so the caller falls back to a cold
// check rather than trusting stale entries.
func (cs *CheckerState) LoadCache(r io.Reader, contentHash [32]byte) (ok bool, err error) {
	var blob cacheBlob
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&blob); err != nil {
		return false, fmt.Errorf("checker: decode cache: %w", err)
	}
	if blob.Schema != cacheSchemaVersion || blob.ContentHash != contentHash {
		return false, nil
	}
	for _, e := range blob.NodeTypes {
		key := nodeTypeKey{Expr: ast.ExprID(e.Expr), Scope: symbols.ScopeID(e.Scope)}
		cs.nodeTypes[key] = types.TypeID(e.Type)
	}
	for _, e := range blob.SymbolTypes {
		cs.symbolTypes[symbols.SymbolID(e.Symbol)] = types.TypeID(e.Type)
	}
	return true, nil
}
