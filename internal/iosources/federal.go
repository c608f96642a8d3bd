package iosources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/civicdata/legisdb/pkg/dims"
	"github.com/civicdata/legisdb/pkg/record"
	"github.com/gnames/gnfmt"
	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
)

// federalMember is one element of legislators-current.json.
type federalMember struct {
	ID struct {
		Bioguide string `json:"bioguide" validate:"required"`
	} `json:"id"`

	Name struct {
		First        string `json:"first"`
		Last         string `json:"last"`
		OfficialFull string `json:"official_full"`
	} `json:"name"`

	Bio struct {
		Birthday string `json:"birthday"`
		Gender   string `json:"gender"`
	} `json:"bio"`

	Terms []federalTerm `json:"terms"`
}

type federalTerm struct {
	// Type is "rep" or "sen".
	Type  string `json:"type"`
	Start string `json:"start"`
	End   string `json:"end"`
	State string `json:"state"`

	// District is absent for senators, 0 for at-large seats.
	District *int   `json:"district"`
	Party    string `json:"party"`
}

// FetchFederal returns the federal roster document. Location is
// either an http(s) URL, downloaded once without retries, or a
// local file path.
func FetchFederal(
	ctx context.Context,
	location string,
	timeout time.Duration,
) ([]byte, error) {
	if !isURL(location) {
		res, err := os.ReadFile(location)
		if err != nil {
			return nil, ReadError(location, err)
		}
		return res, nil
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	resp, err := client.R().SetContext(ctx).Get(location)
	if err != nil {
		return nil, FetchError(location, err)
	}
	if resp.IsError() {
		return nil, FetchError(location,
			fmt.Errorf("unexpected status %d", resp.StatusCode()))
	}

	slog.Info("federal roster downloaded",
		"url", location, "bytes", len(resp.Body()),
		"duration", resp.Time().String())
	return resp.Body(), nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// federal is a record.Source over the members of the federal roster.
// Members are decoded one by one on Next.
type federal struct {
	name     string
	members  []json.RawMessage
	idx      int
	enc      gnfmt.GNjson
	validate *validator.Validate
}

// NewFederal creates a Source from a legislators-current.json
// document. The document must be a JSON array, a malformed element
// only makes that element a source-shape error.
func NewFederal(location string, data []byte) (record.Source, error) {
	res := &federal{
		name:     "federal",
		enc:      gnfmt.GNjson{},
		validate: validator.New(),
	}
	if err := res.enc.Decode(data, &res.members); err != nil {
		return nil, DecodeError(location, err)
	}
	return res, nil
}

func (f *federal) Name() string { return f.name }

func (f *federal) Len() int { return len(f.members) }

// Next returns the next member of the roster.
func (f *federal) Next(ctx context.Context) (record.RawRecord, error) {
	var res record.RawRecord
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if f.idx >= len(f.members) {
		return res, io.EOF
	}
	ref := fmt.Sprintf("%s[%d]", f.name, f.idx)
	raw := f.members[f.idx]
	f.idx++

	var m federalMember
	if err := f.enc.Decode(raw, &m); err != nil {
		return res, record.ShapeError(ref, "cannot decode member: %v", err)
	}
	if err := f.validate.Struct(m); err != nil {
		return res, record.ShapeError(ref, "%s", validationMessage(err))
	}

	return m.toRecord(ref), nil
}

func (m federalMember) toRecord(ref string) record.RawRecord {
	fullName := m.Name.OfficialFull
	if strings.TrimSpace(fullName) == "" {
		fullName = m.Name.First + " " + m.Name.Last
	}

	res := record.RawRecord{
		Origin:     record.Federal,
		Ref:        ref,
		SourceID:   m.ID.Bioguide,
		ExternalID: m.ID.Bioguide,
		FullName:   fullName,
		GivenName:  m.Name.First,
		FamilyName: m.Name.Last,
		Gender:     m.Bio.Gender,
		BirthDate:  m.Bio.Birthday,
	}

	if len(m.Terms) > 0 {
		res.Term = m.Terms[len(m.Terms)-1].toContext()
	}
	return res
}

// toContext returns nil when the seat of a House term is unknown.
func (t federalTerm) toContext() *record.TermContext {
	state := strings.ToUpper(strings.TrimSpace(t.State))
	var district string
	switch strings.ToLower(t.Type) {
	case "sen":
		district = state
	case "rep":
		if t.District == nil {
			return nil
		}
		district = houseDistrict(state, *t.District)
	default:
		// an unknown type is left to chamber validation
		district = state
	}

	return &record.TermContext{
		JurisdictionName:   dims.FederalName,
		JurisdictionAbbrev: dims.FederalAbbrev,
		JurisdictionType:   string(dims.FederalJurisdiction),
		Chamber:            t.Type,
		District:           district,
		Party:              t.Party,
		StartDate:          t.Start,
		EndDate:            t.End,
	}
}

// houseDistrict encodes a House seat as MN-5, at-large seats as MN-AL.
func houseDistrict(state string, number int) string {
	if number <= 0 {
		return state + "-AL"
	}
	return fmt.Sprintf("%s-%d", state, number)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed on '%s'", v.Namespace(), v.Tag()))
	}
	return strings.Join(fields, "; ")
}
