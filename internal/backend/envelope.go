package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type ListKind int

const (
	BareList ListKind = iota + 1
	WrappedList
)

func (k ListKind) String() string {
	switch k {
	case BareList:
		return "bare"
	case WrappedList:
		return "wrapped"
	default:
		return "unknown"
	}
}

// ListEnvelope is a list response in one of the two shapes the backend uses:
// a bare JSON array or an object carrying the array under "data".
type ListEnvelope[T any] struct {
	Kind  ListKind
	Items []T
}

type wrappedList struct {
	Data json.RawMessage `json:"data"`
}

func decodeList[T any](body []byte) (ListEnvelope[T], error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ListEnvelope[T]{}, fmt.Errorf("empty list response")
	}

	switch trimmed[0] {
	case '[':
		items, err := decodeItems[T](trimmed)
		if err != nil {
			return ListEnvelope[T]{}, err
		}
		return ListEnvelope[T]{Kind: BareList, Items: items}, nil
	case '{':
		var wrapped wrappedList
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return ListEnvelope[T]{}, fmt.Errorf("unable to decode wrapped list: %w", err)
		}
		data := bytes.TrimSpace(wrapped.Data)
		if len(data) == 0 {
			return ListEnvelope[T]{}, fmt.Errorf("wrapped list response has no data field")
		}
		if bytes.Equal(data, []byte("null")) {
			return ListEnvelope[T]{Kind: WrappedList, Items: []T{}}, nil
		}
		if data[0] != '[' {
			return ListEnvelope[T]{}, fmt.Errorf("wrapped list data is not an array")
		}
		items, err := decodeItems[T](data)
		if err != nil {
			return ListEnvelope[T]{}, err
		}
		return ListEnvelope[T]{Kind: WrappedList, Items: items}, nil
	default:
		if bytes.Equal(trimmed, []byte("null")) {
			return ListEnvelope[T]{Kind: BareList, Items: []T{}}, nil
		}
		return ListEnvelope[T]{}, fmt.Errorf("unexpected list response shape")
	}
}

func decodeItems[T any](data []byte) ([]T, error) {
	items := make([]T, 0)
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unable to decode list items: %w", err)
	}
	return items, nil
}
