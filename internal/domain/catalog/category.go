package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Detail is one leaf category: display label plus its crawl target.
// The structure file stores details as two-element ["name", "url"] arrays.
type Detail struct {
	Name string
	URL  string
}

func (d *Detail) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("detail entry must be a [name, url] pair, got %d elements", len(pair))
	}
	d.Name = pair[0]
	d.URL = pair[1]
	return nil
}

func (d Detail) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{d.Name, d.URL})
}

// MidCategory is a mid-level category with its ordered leaf details.
type MidCategory struct {
	Name    string
	Details []Detail
}

// TopCategory is a top-level category with its ordered mid categories.
type TopCategory struct {
	Name string
	Mids []MidCategory
}

// Structure is the static three-level reference data. The source JSON is an
// object of objects; order matters for presentation, so decoding walks the
// token stream instead of going through a Go map.
type Structure []TopCategory

func (s *Structure) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("category structure: %w", err)
	}
	var out Structure
	for dec.More() {
		topName, err := stringToken(dec)
		if err != nil {
			return err
		}
		top := TopCategory{Name: topName}
		if err := expectDelim(dec, '{'); err != nil {
			return fmt.Errorf("category %q: %w", topName, err)
		}
		for dec.More() {
			midName, err := stringToken(dec)
			if err != nil {
				return err
			}
			var details []Detail
			if err := dec.Decode(&details); err != nil {
				return fmt.Errorf("category %q/%q: %w", topName, midName, err)
			}
			top.Mids = append(top.Mids, MidCategory{Name: midName, Details: details})
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return err
		}
		out = append(out, top)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return err
	}
	*s = out
	return nil
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || rune(d) != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string key, got %v", tok)
	}
	return s, nil
}

// Top returns the top category with the given name.
func (s Structure) Top(name string) (TopCategory, bool) {
	for _, top := range s {
		if top.Name == name {
			return top, true
		}
	}
	return TopCategory{}, false
}

// Mid returns the mid category with the given name, searching every top.
func (s Structure) Mid(name string) (MidCategory, bool) {
	for _, top := range s {
		for _, mid := range top.Mids {
			if mid.Name == name {
				return mid, true
			}
		}
	}
	return MidCategory{}, false
}
