package application

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jakoblorz/go-ksp/internal/extension"
)

// StructuralMechanicsModule is the registry id of StructuralMechanics
const StructuralMechanicsModule = "applications/structural_mechanics"

var _ extension.Extension = (*StructuralMechanics)(nil)

// AnalysisType selects the structural solver strategy
type AnalysisType string

const (
	AnalysisStatic  AnalysisType = "static"
	AnalysisDynamic AnalysisType = "dynamic"
)

// StructuralSettings is the serialized state of StructuralMechanics
type StructuralSettings struct {
	AnalysisType AnalysisType `json:"analysis_type"`
	SolverType   string       `json:"solver_type"`
	TimeStep     float64      `json:"time_step"`
	EndTime      float64      `json:"end_time"`
}

// Validate checks the settings for consistency
func (s StructuralSettings) Validate() error {
	switch s.AnalysisType {
	case AnalysisStatic, AnalysisDynamic:
	default:
		return fmt.Errorf("invalid analysis type %q (must be static or dynamic)", s.AnalysisType)
	}
	if strings.TrimSpace(s.SolverType) == "" {
		return fmt.Errorf("solver type must not be empty")
	}
	if s.TimeStep <= 0 {
		return fmt.Errorf("time step must be positive, got %v", s.TimeStep)
	}
	if s.EndTime < s.TimeStep {
		return fmt.Errorf("end time %v is smaller than time step %v", s.EndTime, s.TimeStep)
	}
	return nil
}

// StructuralMechanics carries the analysis settings of a structural
// simulation set up on top of the study
type StructuralMechanics struct {
	settings StructuralSettings
	modified bool
}

// NewStructuralMechanics returns an extension with static linear defaults
func NewStructuralMechanics() *StructuralMechanics {
	return &StructuralMechanics{
		settings: StructuralSettings{
			AnalysisType: AnalysisStatic,
			SolverType:   "linear",
			TimeStep:     1.0,
			EndTime:      1.0,
		},
	}
}

func (s *StructuralMechanics) ModuleID() string {
	return StructuralMechanicsModule
}

// Settings returns a copy of the current settings
func (s *StructuralMechanics) Settings() StructuralSettings {
	return s.settings
}

// Set updates a single setting by its JSON key. Values are parsed but not
// cross-validated; an inconsistent combination makes Serialize fail.
func (s *StructuralMechanics) Set(key, value string) error {
	next := s.settings
	switch key {
	case "analysis_type":
		next.AnalysisType = AnalysisType(value)
	case "solver_type":
		next.SolverType = value
	case "time_step", "end_time":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		if key == "time_step" {
			next.TimeStep = f
		} else {
			next.EndTime = f
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if next != s.settings {
		s.settings = next
		s.modified = true
	}
	return nil
}

// Serialize always returns the current settings so nothing is lost, but
// reports failure when they are inconsistent
func (s *StructuralMechanics) Serialize() (bool, json.RawMessage) {
	data, err := json.Marshal(s.settings)
	if err != nil {
		return false, nil
	}
	if err := s.settings.Validate(); err != nil {
		return false, data
	}
	s.modified = false
	return true, data
}

// Deserialize restores settings. Inconsistent settings are kept but reported
// as a failure; a malformed payload leaves the defaults in place.
func (s *StructuralMechanics) Deserialize(data json.RawMessage) bool {
	var loaded StructuralSettings
	if err := json.Unmarshal(data, &loaded); err != nil {
		return false
	}
	s.settings = loaded
	s.modified = false
	return loaded.Validate() == nil
}

func (s *StructuralMechanics) IsModified() bool {
	return s.modified
}
