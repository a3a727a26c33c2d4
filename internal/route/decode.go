package route

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Decode parses a JSON route table of the form
//
//	{"/google": {"domain": "dns.google", "paths": {"/query-dns": "/dns-query"}}}
//
// preserving the key order of both the outer object and each inner paths
// object. Match order is observable behavior, so the decoder walks JSON
// tokens instead of unmarshaling into a Go map.
func Decode(data []byte) (Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("route mappings: %w", err)
	}

	var table Table
	for dec.More() {
		prefix, err := readKey(dec)
		if err != nil {
			return nil, fmt.Errorf("route mappings: %w", err)
		}
		r, err := decodeEntry(dec)
		if err != nil {
			return nil, fmt.Errorf("route mappings: entry %q: %w", prefix, err)
		}
		r.Prefix = prefix
		table = append(table, r)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("route mappings: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("route mappings: trailing data after table")
	}
	return table, nil
}

// decodeEntry reads one {"domain": ..., "paths": {...}} object. Unknown
// keys are skipped so the wire format can grow without breaking older
// deployments.
func decodeEntry(dec *json.Decoder) (Route, error) {
	var r Route
	if err := expectDelim(dec, '{'); err != nil {
		return r, err
	}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return r, err
		}
		switch key {
		case "domain":
			if err := dec.Decode(&r.Domain); err != nil {
				return r, fmt.Errorf("domain: %w", err)
			}
		case "paths":
			paths, err := decodePaths(dec)
			if err != nil {
				return r, fmt.Errorf("paths: %w", err)
			}
			r.Paths = paths
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return r, err
			}
		}
	}
	return r, expectDelim(dec, '}')
}

// decodePaths reads an ordered {"from": "to", ...} object.
func decodePaths(dec *json.Decoder) ([]PathMapping, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var paths []PathMapping
	for dec.More() {
		from, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		var to string
		if err := dec.Decode(&to); err != nil {
			return nil, fmt.Errorf("value for %q: %w", from, err)
		}
		paths = append(paths, PathMapping{From: from, To: to})
	}
	return paths, expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}
