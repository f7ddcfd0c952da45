package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	KindAsset     AccountKind = "asset"
	KindCard      AccountKind = "card"
	KindLiability AccountKind = "liab"
)

// AccountKind identifies which collection an AccountRef points into.
type AccountKind string

// AccountRef is a typed reference to an asset, credit card, or liability.
// It is parsed once at the boundary from the wire form "kind:id" and
// carried as a tagged value from then on.
type AccountRef struct {
	Kind AccountKind
	ID   string
}

func (k AccountKind) Valid() bool {
	switch k {
	case KindAsset, KindCard, KindLiability:
		return true
	}
	return false
}

// ParseAccountRef parses the "kind:id" wire form. An empty string means
// "no account" and yields a nil ref without error.
func ParseAccountRef(s string) (*AccountRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	kind, id, ok := strings.Cut(s, ":")
	if !ok || id == "" {
		return nil, fmt.Errorf("malformed account reference %q", s)
	}
	k := AccountKind(kind)
	if !k.Valid() {
		return nil, fmt.Errorf("unknown account kind %q", kind)
	}
	return &AccountRef{Kind: k, ID: id}, nil
}

func (r AccountRef) String() string {
	return string(r.Kind) + ":" + r.ID
}

// MarshalJSON keeps the persisted form identical to the wire form, so
// snapshots written here stay importable by anything that speaks it.
func (r AccountRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *AccountRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAccountRef(s)
	if err != nil {
		return err
	}
	if parsed == nil {
		return fmt.Errorf("empty account reference")
	}
	*r = *parsed
	return nil
}

// MarshalYAML mirrors the JSON form for YAML exports.
func (r AccountRef) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

func (r *AccountRef) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseAccountRef(s)
	if err != nil {
		return err
	}
	if parsed == nil {
		return fmt.Errorf("empty account reference")
	}
	*r = *parsed
	return nil
}
