package admin

import (
	"strings"

	"zozikafe/internal/domain/machines"
)

// FeatureInput is one feature row of the entry form.
type FeatureInput struct {
	BG string `json:"bg" form:"feature_bg"`
	EN string `json:"en" form:"feature_en"`
}

// Form is the admin entry form, both as submitted and as pre-filled for edits.
type Form struct {
	Name        string         `json:"name"`
	TypeBG      string         `json:"type_bg"`
	TypeEN      string         `json:"type_en"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Image       string         `json:"image"`
	Features    []FeatureInput `json:"features"`
}

// EmptyForm is the cleared form: available status and one blank feature row.
func EmptyForm() Form {
	return Form{
		Status:   string(machines.StatusAvailable),
		Features: []FeatureInput{{}},
	}
}

// FormFromMachine splits every bilingual field back into its two inputs.
func FormFromMachine(m machines.Machine) Form {
	f := Form{
		Name:        m.Name,
		TypeBG:      m.Type.BG,
		TypeEN:      m.Type.EN,
		Description: m.Description,
		Status:      string(m.Status),
		Image:       m.Image,
		Features:    make([]FeatureInput, 0, len(m.Features)),
	}
	for _, feat := range m.Features {
		f.Features = append(f.Features, FeatureInput{BG: feat.BG, EN: feat.EN})
	}
	if len(f.Features) == 0 {
		f.Features = append(f.Features, FeatureInput{})
	}
	return f
}

// AddFeatureRow appends a blank feature row.
func (f Form) AddFeatureRow() Form {
	f.Features = append(append([]FeatureInput(nil), f.Features...), FeatureInput{})
	return f
}

// RemoveFeatureRow drops the last feature row. The form always keeps one.
func (f Form) RemoveFeatureRow() Form {
	if len(f.Features) <= 1 {
		f.Features = []FeatureInput{{}}
		return f
	}
	f.Features = append([]FeatureInput(nil), f.Features[:len(f.Features)-1]...)
	return f
}

// ParseFeatures keeps rows with a primary value; a blank secondary copies it.
func (f Form) ParseFeatures() []machines.Bilingual {
	out := make([]machines.Bilingual, 0, len(f.Features))
	for _, row := range f.Features {
		if strings.TrimSpace(row.BG) == "" {
			continue
		}
		out = append(out, machines.NewBilingual(row.BG, row.EN))
	}
	return out
}

// ParseType reads the type inputs. A single "bg|en" value, as sent by the
// type drop-down, is split.
func (f Form) ParseType() machines.Bilingual {
	if strings.TrimSpace(f.TypeEN) == "" && strings.Contains(f.TypeBG, "|") {
		b := machines.ParseLegacy(f.TypeBG)
		return machines.NewBilingual(b.BG, b.EN)
	}
	return machines.NewBilingual(f.TypeBG, f.TypeEN)
}

// validate checks the form and returns the machine fields it describes.
// ID and DateAdded are left for the caller.
func (f Form) validate() (machines.Machine, error) {
	features := f.ParseFeatures()
	if len(features) == 0 {
		return machines.Machine{}, ErrNoFeatures
	}
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return machines.Machine{}, ErrNameRequired
	}
	typ := f.ParseType()
	if typ.BG == "" {
		return machines.Machine{}, ErrTypeRequired
	}
	status := machines.StatusAvailable
	if f.hasStatus() {
		s, ok := machines.ParseStatus(f.Status)
		if !ok {
			return machines.Machine{}, ErrInvalidStatus
		}
		status = s
	}
	return machines.Machine{
		Name:        name,
		Type:        typ,
		Description: strings.TrimSpace(f.Description),
		Features:    features,
		Status:      status,
		Image:       strings.TrimSpace(f.Image),
	}, nil
}

func (f Form) hasStatus() bool {
	return strings.TrimSpace(f.Status) != ""
}
