package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Stage is one timed step of a model run, e.g. "score" or "simulate"
type Stage struct {
	Name      string `json:"name"`
	ElapsedMs *int64 `json:"elapsedMs"`

	startTs time.Time
}

func (s *Stage) End() {
	if s.ElapsedMs == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.ElapsedMs = &t
	}
}

const ContextProfileKey = "runProfile"

// Profile is the ordered list of stages for a single run
type Profile struct {
	Stages  []*Stage `json:"stages"`
	startTs time.Time
	TotalMs *int64 `json:"totalMs"`
}

func NewProfile() (newProfile *Profile, endProfile func()) {
	newProfile = &Profile{
		Stages:  []*Stage{},
		startTs: time.Now(),
	}
	return newProfile, newProfile.End
}

// ProfileFromContext returns the profile stored on ctx, or a fresh one
// if the caller did not set one up.
func ProfileFromContext(ctx context.Context) *Profile {
	if p, ok := ctx.Value(ContextProfileKey).(*Profile); ok && p != nil {
		return p
	}
	p, _ := NewProfile()
	return p
}

func (p *Profile) End() {
	if len(p.Stages) > 0 {
		p.Stages[len(p.Stages)-1].End()
	}
	if p.TotalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.TotalMs = &t
	}
}

// StartStage ends the previous stage and begins a new one
// not thread safe
func (p *Profile) StartStage(name string) (*Stage, func()) {
	if len(p.Stages) > 0 {
		p.Stages[len(p.Stages)-1].End()
	}
	s := &Stage{
		Name:    name,
		startTs: time.Now(),
	}
	p.Stages = append(p.Stages, s)
	return s, s.End
}

func (p *Profile) StageNames() []string {
	names := make([]string, 0, len(p.Stages))
	for _, s := range p.Stages {
		names = append(names, s.Name)
	}
	return names
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	return json.Marshal(p)
}
