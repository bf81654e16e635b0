package billing

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Concrete billable item types live in other packages; they register a
// factory here (from init) so that lines can be deserialized without
// this package importing them.
var (
	itemKindsMu sync.RWMutex
	itemKinds   = map[string]func() BillableItem{}
)

func RegisterItemKind(kind string, factory func() BillableItem) {
	itemKindsMu.Lock()
	defer itemKindsMu.Unlock()
	if _, dup := itemKinds[kind]; dup {
		panic(fmt.Sprintf("billing: item kind %q registered twice", kind))
	}
	itemKinds[kind] = factory
}

type itemEnvelope struct {
	Kind string          `json:"kind"`
	Item json.RawMessage `json:"item"`
}

func marshalItem(item BillableItem) ([]byte, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	return json.Marshal(itemEnvelope{Kind: item.Kind(), Item: raw})
}

func unmarshalItem(data []byte) (BillableItem, error) {
	var envelope itemEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}

	itemKindsMu.RLock()
	factory, ok := itemKinds[envelope.Kind]
	itemKindsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown billable item kind %q", envelope.Kind)
	}

	item := factory()
	if err := json.Unmarshal(envelope.Item, item); err != nil {
		return nil, err
	}
	return item, nil
}
