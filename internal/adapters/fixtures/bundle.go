// Package fixtures loads care plan bundles from YAML or JSON files and serves
// them through the repository interfaces, for the CLI, seeding and tests.
package fixtures

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// Bundle is the on-disk layout of one or more care plans with their steps,
// dependencies and risk metadata.
type Bundle struct {
	CarePlans    []*entities.CarePlan     `yaml:"carePlans" json:"carePlans"`
	Steps        []*entities.CareStep     `yaml:"careSteps" json:"careSteps"`
	Dependencies []*entities.Dependency   `yaml:"dependencies" json:"dependencies"`
	RiskMetadata []*entities.RiskMetadata `yaml:"riskMetadata" json:"riskMetadata"`
}

// LoadFile reads a bundle. JSON files parse too since JSON is valid YAML.
func LoadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	return Parse(data)
}

// Parse decodes a bundle, rejecting unknown fields
func Parse(data []byte) (*Bundle, error) {
	var bundle Bundle
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	return &bundle, nil
}

// Validate checks every record and the references between them. All
// problems are reported, not just the first.
func (b *Bundle) Validate() error {
	var errs []error

	plans := make(map[string]*entities.CarePlan, len(b.CarePlans))
	for _, p := range b.CarePlans {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
		if _, dup := plans[p.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate care plan id %s", p.ID))
		}
		plans[p.ID] = p
	}

	steps := make(map[string]*entities.CareStep, len(b.Steps))
	for _, s := range b.Steps {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
		if plan, ok := plans[s.CarePlanID]; !ok {
			errs = append(errs, fmt.Errorf("care step %s: unknown care plan %s", s.ID, s.CarePlanID))
		} else if err := plan.CheckStepRange(s); err != nil {
			errs = append(errs, err)
		}
		if _, dup := steps[s.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate care step id %s", s.ID))
		}
		steps[s.ID] = s
	}

	for _, d := range b.Dependencies {
		if err := d.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		for _, id := range []string{d.SourceStepID, d.TargetStepID} {
			s, ok := steps[id]
			if !ok {
				errs = append(errs, fmt.Errorf("dependency %s: unknown step %s", d.ID, id))
				continue
			}
			if s.CarePlanID != d.CarePlanID {
				errs = append(errs, fmt.Errorf("dependency %s: step %s belongs to plan %s, not %s", d.ID, id, s.CarePlanID, d.CarePlanID))
			}
		}
	}

	seenRisk := make(map[string]struct{}, len(b.RiskMetadata))
	for _, m := range b.RiskMetadata {
		if err := m.Validate(); err != nil {
			errs = append(errs, err)
		}
		if _, ok := steps[m.StepID]; !ok {
			errs = append(errs, fmt.Errorf("risk metadata %s: unknown step %s", m.ID, m.StepID))
		}
		if _, dup := seenRisk[m.StepID]; dup {
			errs = append(errs, fmt.Errorf("step %s has more than one risk metadata record", m.StepID))
		}
		seenRisk[m.StepID] = struct{}{}
	}

	return errors.Join(errs...)
}
