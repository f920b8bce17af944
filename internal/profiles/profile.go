// Package profiles defines resource profiles: the kinds of workers a
// mission plan can assign tasks to, with their specializations, the
// complexity band they work best in, and how many tasks each can carry
// at once.
package profiles

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/errors"
)

// Profile describes one resource profile
type Profile struct {
	Name            string   `yaml:"name" json:"name"`
	Description     string   `yaml:"description,omitempty" json:"description,omitempty"`
	Specializations []string `yaml:"specializations,omitempty" json:"specializations,omitempty"`

	// ComplexityMin and ComplexityMax bound the complexity band this
	// profile is a strong fit for. Tasks outside the band can still be
	// assigned, at a scoring penalty above the band.
	ComplexityMin int `yaml:"complexity_min" json:"complexity_min"`
	ComplexityMax int `yaml:"complexity_max" json:"complexity_max"`

	// MaxConcurrent is how many tasks of one parallel group this
	// profile can carry before it counts as overloaded
	MaxConcurrent int `yaml:"max_concurrent" json:"max_concurrent"`

	// VerificationExpertise marks profiles suited to verification tasks
	VerificationExpertise bool `yaml:"verification_expertise,omitempty" json:"verification_expertise,omitempty"`
}

// Validate checks a single profile
func (p *Profile) Validate() error {
	if _, err := domain.NewProfileName(p.Name); err != nil {
		return errors.NewProfileInvalidError(err.Error())
	}
	if _, err := domain.NewComplexity(p.ComplexityMin); err != nil {
		return errors.NewProfileInvalidError(
			fmt.Sprintf("profile %q: complexity_min out of range", p.Name))
	}
	if _, err := domain.NewComplexity(p.ComplexityMax); err != nil {
		return errors.NewProfileInvalidError(
			fmt.Sprintf("profile %q: complexity_max out of range", p.Name))
	}
	if p.ComplexityMin > p.ComplexityMax {
		return errors.NewProfileInvalidError(
			fmt.Sprintf("profile %q: complexity_min %d exceeds complexity_max %d",
				p.Name, p.ComplexityMin, p.ComplexityMax))
	}
	if p.MaxConcurrent < 1 {
		return errors.NewProfileInvalidError(
			fmt.Sprintf("profile %q: max_concurrent must be at least 1", p.Name))
	}
	for _, spec := range p.Specializations {
		if strings.TrimSpace(spec) == "" {
			return errors.NewProfileInvalidError(
				fmt.Sprintf("profile %q: empty specialization", p.Name))
		}
	}
	return nil
}

// MatchesSpecialization reports whether any specialization appears in
// the given text, case-insensitively
func (p *Profile) MatchesSpecialization(text string) bool {
	lower := strings.ToLower(text)
	for _, spec := range p.Specializations {
		if strings.Contains(lower, strings.ToLower(spec)) {
			return true
		}
	}
	return false
}

// InComplexityBand reports where a complexity sits relative to the
// profile's band: -1 below, 0 inside, +1 above
func (p *Profile) InComplexityBand(c domain.Complexity) int {
	if c.Int() < p.ComplexityMin {
		return -1
	}
	if c.Int() > p.ComplexityMax {
		return 1
	}
	return 0
}

// Registry holds the declared profiles. Declaration order is
// significant: assignment ties resolve to the earlier profile.
type Registry struct {
	Profiles []Profile `yaml:"profiles" json:"profiles"`
}

// Validate checks registry invariants: at least one profile, valid
// profiles, unique names
func (r *Registry) Validate() error {
	if len(r.Profiles) == 0 {
		return errors.NewProfileInvalidError("registry declares no profiles")
	}

	seen := make(map[string]bool, len(r.Profiles))
	for i := range r.Profiles {
		p := &r.Profiles[i]
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.Name] {
			return errors.NewProfileInvalidError(
				fmt.Sprintf("duplicate profile %q", p.Name))
		}
		seen[p.Name] = true
	}
	return nil
}

// Lookup finds a profile by name
func (r *Registry) Lookup(name string) (Profile, bool) {
	for _, p := range r.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// Names returns profile names in declaration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.Profiles))
	for i, p := range r.Profiles {
		names[i] = p.Name
	}
	return names
}

// Merge overlays another registry onto this one. Profiles with matching
// names are replaced in place; new profiles append in overlay order.
// The receiver is unchanged.
func (r *Registry) Merge(overlay *Registry) *Registry {
	if overlay == nil || len(overlay.Profiles) == 0 {
		merged := &Registry{Profiles: make([]Profile, len(r.Profiles))}
		copy(merged.Profiles, r.Profiles)
		return merged
	}

	merged := &Registry{Profiles: make([]Profile, len(r.Profiles))}
	copy(merged.Profiles, r.Profiles)

	index := make(map[string]int, len(merged.Profiles))
	for i, p := range merged.Profiles {
		index[p.Name] = i
	}

	for _, p := range overlay.Profiles {
		if i, ok := index[p.Name]; ok {
			merged.Profiles[i] = p
			continue
		}
		index[p.Name] = len(merged.Profiles)
		merged.Profiles = append(merged.Profiles, p)
	}

	return merged
}
