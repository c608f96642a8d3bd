package iosources

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/civicdata/legisdb/pkg/dims"
	"github.com/civicdata/legisdb/pkg/record"
	"gopkg.in/yaml.v3"
)

// statePerson is one legislator file of the Open States people
// repository. Only fields used for loading are decoded.
type statePerson struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	GivenName  string `yaml:"given_name"`
	FamilyName string `yaml:"family_name"`
	Gender     string `yaml:"gender"`
	BirthDate  string `yaml:"birth_date"`

	Party []struct {
		Name      string `yaml:"name"`
		StartDate string `yaml:"start_date"`
		EndDate   string `yaml:"end_date"`
	} `yaml:"party"`

	Roles []stateRole `yaml:"roles"`
}

type stateRole struct {
	// Type is "upper", "lower" or "legislature".
	Type      string `yaml:"type"`
	District  string `yaml:"district"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
}

// state is a record.Source over <root>/<state>/legislature/*.yml files.
type state struct {
	root  string
	files []string
	idx   int
}

// NewState discovers legislator files under root. Files are served in
// lexical path order. A missing root is an error, a root without files
// gives an empty Source.
func NewState(root string) (record.Source, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, DirNotFoundError(root, err)
	}
	if !fi.IsDir() {
		return nil, DirNotFoundError(root, fmt.Errorf("not a directory"))
	}

	pattern := filepath.Join(root, "*", "legislature", "*.yml")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, ReadError(pattern, err)
	}
	return &state{root: root, files: files}, nil
}

func (s *state) Name() string { return "state" }

func (s *state) Len() int { return len(s.files) }

// Next reads and decodes the next file.
func (s *state) Next(ctx context.Context) (record.RawRecord, error) {
	var res record.RawRecord
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if s.idx >= len(s.files) {
		return res, io.EOF
	}
	path := s.files[s.idx]
	s.idx++

	ref, err := filepath.Rel(s.root, path)
	if err != nil {
		ref = path
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, record.ShapeError(ref, "cannot read file: %v", err)
	}

	var p statePerson
	if err = yaml.Unmarshal(data, &p); err != nil {
		return res, record.ShapeError(ref, "cannot decode YAML: %v", err)
	}

	// <root>/<state>/legislature/<file>.yml
	abbrev := filepath.Base(filepath.Dir(filepath.Dir(path)))
	return p.toRecord(ref, abbrev), nil
}

func (p statePerson) toRecord(ref, stateDir string) record.RawRecord {
	fullName := p.Name
	if strings.TrimSpace(fullName) == "" {
		fullName = p.GivenName + " " + p.FamilyName
	}

	res := record.RawRecord{
		Origin:     record.State,
		Ref:        ref,
		SourceID:   p.ID,
		FullName:   fullName,
		GivenName:  p.GivenName,
		FamilyName: p.FamilyName,
		Gender:     p.Gender,
		BirthDate:  p.BirthDate,
	}

	role, ok := p.currentRole()
	if !ok {
		return res
	}

	abbrev := strings.ToUpper(stateDir)
	name, _ := dims.StateName(abbrev)
	res.Term = &record.TermContext{
		JurisdictionName:   name,
		JurisdictionAbbrev: abbrev,
		JurisdictionType:   string(dims.StateJurisdiction),
		Chamber:            role.Type,
		District:           role.District,
		Party:              p.currentParty(),
		StartDate:          role.StartDate,
		EndDate:            role.EndDate,
	}
	return res
}

// currentRole returns the last legislative role with a district
// that has no end date, or the last such role if all of them ended.
func (p statePerson) currentRole() (stateRole, bool) {
	var res stateRole
	var found bool
	for _, r := range p.Roles {
		switch strings.ToLower(r.Type) {
		case "upper", "lower", "legislature":
		default:
			continue
		}
		if strings.TrimSpace(r.District) == "" {
			continue
		}
		if r.EndDate == "" {
			res, found = r, true
			continue
		}
		if !found || res.EndDate != "" {
			res, found = r, true
		}
	}
	return res, found
}

// currentParty follows the same rule as currentRole.
func (p statePerson) currentParty() string {
	var res string
	var open bool
	for _, v := range p.Party {
		if v.EndDate == "" {
			res, open = v.Name, true
			continue
		}
		if !open {
			res = v.Name
		}
	}
	return res
}
