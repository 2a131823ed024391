package scapdb

import (
	"time"
)

// Database is the root aggregate built from one scan.
//
// It's built from scratch on every invocation and owns every value it holds.
type Database struct {
	Metadata Metadata `json:"metadata"`
	// OS identity → datastreams, in discovery order.
	Datastreams map[string][]Datastream `json:"datastreams"`
	// OS identity → content version → profiles, in document order.
	Profiles map[string]map[string][]Profile `json:"profiles"`
	// OS identity → content version → profile id → selected rules, in
	// document order.
	Rules map[string]map[string]map[string][]Rule `json:"rules"`
}

// Metadata describes how a Database was generated.
type Metadata struct {
	Generated time.Time `json:"generated"`
	// The scan root, as provided.
	ScapDirectory string `json:"scap_directory"`
}

// NewDatabase returns an empty Database for the scan root.
func NewDatabase(root string, generated time.Time) *Database {
	return &Database{
		Metadata: Metadata{
			Generated:     generated,
			ScapDirectory: root,
		},
		Datastreams: make(map[string][]Datastream),
		Profiles:    make(map[string]map[string][]Profile),
		Rules:       make(map[string]map[string]map[string][]Rule),
	}
}

// AddDatastream records the datastream under its OS identity.
func (db *Database) AddDatastream(ds Datastream) {
	db.Datastreams[ds.OS] = append(db.Datastreams[ds.OS], ds)
}

// SetProfiles records the profiles extracted from the datastream, replacing
// any already recorded for the same OS identity and version. The rule
// mapping for the datastream is created empty if it doesn't exist yet.
func (db *Database) SetProfiles(ds Datastream, ps []Profile) {
	m, ok := db.Profiles[ds.OS]
	if !ok {
		m = make(map[string][]Profile)
		db.Profiles[ds.OS] = m
	}
	if ps == nil {
		ps = []Profile{}
	}
	m[ds.Version] = ps
	db.rulesFor(ds)
}

// SetRules records the rules selected by the named profile in the datastream.
func (db *Database) SetRules(ds Datastream, profile string, rs []Rule) {
	if rs == nil {
		rs = []Rule{}
	}
	db.rulesFor(ds)[profile] = rs
}

func (db *Database) rulesFor(ds Datastream) map[string][]Rule {
	byVer, ok := db.Rules[ds.OS]
	if !ok {
		byVer = make(map[string]map[string][]Rule)
		db.Rules[ds.OS] = byVer
	}
	byProf, ok := byVer[ds.Version]
	if !ok {
		byProf = make(map[string][]Rule)
		byVer[ds.Version] = byProf
	}
	return byProf
}

// ProfileCount reports the number of profiles recorded for the OS identity
// and content version.
func (db *Database) ProfileCount(os, version string) int {
	return len(db.Profiles[os][version])
}
