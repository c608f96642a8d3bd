package dims

import (
	"context"
	"strings"
)

// Store is the find-or-create primitive of the store boundary.
// Every method inserts the natural key if it is absent, ignoring
// duplicates, and returns the id of the stored row.
type Store interface {
	EnsureParty(ctx context.Context, abbr string) (int64, error)
	EnsureJurisdiction(ctx context.Context, name, abbrev, typ string) (int64, error)
	EnsureChamber(ctx context.Context, jurisdictionID int64, name string) (int64, error)
	EnsureDistrict(ctx context.Context, chamberID int64, number string) (int64, error)
}

type jurisdictionKey struct {
	name, abbrev string
}

type chamberKey struct {
	jurisdictionID int64
	name           Chamber
}

type districtKey struct {
	chamberID int64
	number    string
}

// Resolver validates dimension values and resolves their natural keys
// to ids. Resolved ids are cached, so a Resolver must not outlive the
// transaction of its Store.
type Resolver struct {
	store         Store
	parties       map[Party]int64
	jurisdictions map[jurisdictionKey]int64
	chambers      map[chamberKey]int64
	districts     map[districtKey]int64
}

// NewResolver creates a Resolver on top of a Store.
func NewResolver(s Store) *Resolver {
	return &Resolver{
		store:         s,
		parties:       make(map[Party]int64),
		jurisdictions: make(map[jurisdictionKey]int64),
		chambers:      make(map[chamberKey]int64),
		districts:     make(map[districtKey]int64),
	}
}

// ResolveParty returns the id of a party given its code or label.
func (r *Resolver) ResolveParty(ctx context.Context, abbr string) (int64, error) {
	p, err := ParseParty(abbr)
	if err != nil {
		return 0, err
	}
	if id, ok := r.parties[p]; ok {
		return id, nil
	}
	id, err := r.store.EnsureParty(ctx, string(p))
	if err != nil {
		return 0, err
	}
	r.parties[p] = id
	return id, nil
}

// ResolveJurisdiction returns the id of a jurisdiction keyed by
// (name, abbrev).
func (r *Resolver) ResolveJurisdiction(
	ctx context.Context,
	name, abbrev, typ string,
) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, &ValidationError{Dimension: "jurisdiction name", Value: name}
	}
	ab, err := ParseAbbrev(abbrev)
	if err != nil {
		return 0, err
	}
	jt, err := ParseJurisdictionType(typ)
	if err != nil {
		return 0, err
	}

	key := jurisdictionKey{name: name, abbrev: ab}
	if id, ok := r.jurisdictions[key]; ok {
		return id, nil
	}
	id, err := r.store.EnsureJurisdiction(ctx, name, ab, string(jt))
	if err != nil {
		return 0, err
	}
	r.jurisdictions[key] = id
	return id, nil
}

// ResolveChamber returns the id of a chamber within a jurisdiction.
func (r *Resolver) ResolveChamber(
	ctx context.Context,
	jurisdictionID int64,
	name string,
) (int64, error) {
	ch, err := ParseChamber(name)
	if err != nil {
		return 0, err
	}
	key := chamberKey{jurisdictionID: jurisdictionID, name: ch}
	if id, ok := r.chambers[key]; ok {
		return id, nil
	}
	id, err := r.store.EnsureChamber(ctx, jurisdictionID, string(ch))
	if err != nil {
		return 0, err
	}
	r.chambers[key] = id
	return id, nil
}

// ResolveDistrict returns the id of a district within a chamber.
func (r *Resolver) ResolveDistrict(
	ctx context.Context,
	chamberID int64,
	number string,
) (int64, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return 0, &ValidationError{Dimension: "district", Value: number}
	}
	key := districtKey{chamberID: chamberID, number: number}
	if id, ok := r.districts[key]; ok {
		return id, nil
	}
	id, err := r.store.EnsureDistrict(ctx, chamberID, number)
	if err != nil {
		return 0, err
	}
	r.districts[key] = id
	return id, nil
}
