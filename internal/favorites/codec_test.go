package favorites

import (
	"reflect"
	"sort"
	"testing"
)

func TestStorageKey(t *testing.T) {
	if got := StorageKey(DefaultKeyPrefix, "u1"); got != "favorites_u1" {
		t.Errorf("StorageKey() = %q, want favorites_u1", got)
	}
}

func TestDecodeIDs(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []string
		wantErr bool
	}{
		{name: "list of ids", payload: `["m1","m2"]`, want: []string{"m1", "m2"}},
		{name: "empty list", payload: `[]`, want: []string{}},
		{name: "null", payload: `null`, wantErr: true},
		{name: "duplicates keep first position", payload: `["m2","m1","m2"]`, want: []string{"m2", "m1"}},
		{name: "object", payload: `{"ids":["m1"]}`, wantErr: true},
		{name: "non-string element", payload: `["m1",2]`, wantErr: true},
		{name: "truncated", payload: `["m1"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeIDs([]byte(tt.payload))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decodeIDs(%s) = %v, want %v", tt.payload, got, tt.want)
			}
		})
	}
}

func TestEncodeIDs_NilIsEmptyList(t *testing.T) {
	data, err := encodeIDs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `[]` {
		t.Errorf("encodeIDs(nil) = %s, want []", data)
	}
}

func TestEncodeDecode_SameSet(t *testing.T) {
	sets := [][]string{
		{},
		{"m1"},
		{"b", "a", "c"},
		{"with \"quotes\"", "ünïcode", ""},
	}

	for _, set := range sets {
		data, err := encodeIDs(set)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := decodeIDs(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := append([]string{}, set...)
		sort.Strings(want)
		sort.Strings(got)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("set %v came back as %v", set, got)
		}
	}
}
