package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Result is the single tagged outcome type shared by every oracle adapter and
// pipeline stage: either Ok with a value, or Fail with a user-facing message.
type Result[T any] struct {
	OK      bool
	Value   T
	Message string
}

func Ok[T any](v T) Result[T] {
	return Result[T]{OK: true, Value: v}
}

func Fail[T any](message string) Result[T] {
	return Result[T]{Message: message}
}

// MidGroup is one presented mid category with its detail labels.
type MidGroup struct {
	Mid     string
	Details []string
}

// RecommendationMap is the ordered mid -> details mapping shown to the user.
// Marshals as a JSON object in presentation order.
type RecommendationMap []MidGroup

func (m RecommendationMap) Get(mid string) ([]string, bool) {
	for _, g := range m {
		if g.Mid == mid {
			return g.Details, true
		}
	}
	return nil, false
}

func (m RecommendationMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Mid)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(g.Details)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *RecommendationMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("recommendation map must be an object, got %v", tok)
	}
	var out RecommendationMap
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		mid, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("recommendation map key must be a string, got %v", keyTok)
		}
		var details []string
		if err := dec.Decode(&details); err != nil {
			return fmt.Errorf("recommendation map %q: %w", mid, err)
		}
		out = append(out, MidGroup{Mid: mid, Details: details})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

// SelectionTarget is a resolved crawl target: the confirmed category pair
// plus its URL.
type SelectionTarget struct {
	MidKey    string `json:"mid_key"`
	DetailKey string `json:"detail_key"`
	URL       string `json:"url"`
}

// AttributeOptions is one crawled attribute's options: either a plain label
// list, or the label -> link "nav" fallback shape.
type AttributeOptions struct {
	Labels []string
	Links  map[string]string
}

func (o AttributeOptions) IsNav() bool {
	return o.Links != nil
}

func (o AttributeOptions) Empty() bool {
	return len(o.Labels) == 0 && len(o.Links) == 0
}

func (o *AttributeOptions) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err == nil {
		o.Labels = labels
		o.Links = nil
		return nil
	}
	var links map[string]string
	if err := json.Unmarshal(data, &links); err != nil {
		return fmt.Errorf("attribute options must be a label list or a label->link map: %w", err)
	}
	o.Labels = nil
	o.Links = links
	return nil
}

func (o AttributeOptions) MarshalJSON() ([]byte, error) {
	if o.Links != nil {
		return json.Marshal(o.Links)
	}
	if o.Labels == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(o.Labels)
}

// SpecData is the crawled option data for one category page: attribute name
// -> options, with the crawl's attribute order preserved.
type SpecData struct {
	Order []string
	Attrs map[string]AttributeOptions
}

func (s SpecData) Empty() bool {
	if len(s.Attrs) == 0 {
		return true
	}
	for _, o := range s.Attrs {
		if !o.Empty() {
			return false
		}
	}
	return true
}

func (s SpecData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.Order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.Attrs[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *SpecData) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("spec data must be an object, got %v", tok)
	}
	out := SpecData{Attrs: map[string]AttributeOptions{}}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("spec data key must be a string, got %v", keyTok)
		}
		var opts AttributeOptions
		if err := dec.Decode(&opts); err != nil {
			return fmt.Errorf("spec data %q: %w", name, err)
		}
		if _, seen := out.Attrs[name]; !seen {
			out.Order = append(out.Order, name)
		}
		out.Attrs[name] = opts
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// CategoryMatch is the oracle's resolved (mid, detail) pair.
type CategoryMatch struct {
	MidKey    string
	DetailKey string
}

// SpecWriteJob is one deferred cache write scheduled after a successful crawl.
type SpecWriteJob struct {
	ID         uuid.UUID `json:"id"`
	URL        string    `json:"url"`
	MidKey     string    `json:"mid_key"`
	DetailName string    `json:"detail_name"`
	Data       SpecData  `json:"data"`
}

// SpecWriteQueue accepts deferred cache writes. Enqueue must never block the
// caller's turn.
type SpecWriteQueue interface {
	Enqueue(job SpecWriteJob)
}
