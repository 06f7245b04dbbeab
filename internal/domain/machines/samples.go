package machines

import "time"

type sample struct {
	name        string
	typ         Bilingual
	description string
	features    []Bilingual
	status      Status
}

var samples = []sample{
	{
		name:        "La Marzocco Linea Mini",
		typ:         Bilingual{BG: "Домашна еспресо машина", EN: "Home Espresso Machine"},
		description: "Професионална домашна еспресо машина с двоен бойлер",
		features: []Bilingual{
			{BG: "Двоен бойлер система", EN: "Dual Boiler System"},
			{BG: "PID контрол на температурата", EN: "PID Temperature Control"},
			{BG: "Професионална парна дюза", EN: "Professional Steam Wand"},
		},
		status: StatusAvailable,
	},
	{
		name:        "Nuova Simonelli Aurelia II",
		typ:         Bilingual{BG: "Търговска еспресо машина", EN: "Commercial Espresso Machine"},
		description: "Търговска клас еспресо машина за кафенета",
		features: []Bilingual{
			{BG: "2-групова търговска класа", EN: "2-Group Commercial Grade"},
			{BG: "Волуметрично програмиране", EN: "Volumetric Programming"},
			{BG: "Автоматично почистване с пара", EN: "Auto Steam Cleaning"},
		},
		status: StatusAvailable,
	},
	{
		name:        "Rancilio Silvia Pro X",
		typ:         Bilingual{BG: "Полупрофесионална еспресо машина", EN: "Prosumer Espresso Machine"},
		description: "Полупрофесионална машина за сериозни любители",
		features: []Bilingual{
			{BG: "Двоен бойлер", EN: "Dual Boiler"},
			{BG: "LCD дисплей", EN: "LCD Display"},
			{BG: "Търговски компоненти", EN: "Commercial Components"},
		},
		status: StatusSold,
	},
}

// AdminSamples is the inventory an empty admin store starts with.
func AdminSamples(now time.Time) []Machine {
	return buildSamples(now, true)
}

// PublicSamples is what the public page shows when nothing was published yet.
// They carry no description.
func PublicSamples(now time.Time) []Machine {
	return buildSamples(now, false)
}

func buildSamples(now time.Time, withDescription bool) []Machine {
	out := make([]Machine, 0, len(samples))
	for i, s := range samples {
		m := Machine{
			ID:        int64(i + 1),
			Name:      s.name,
			Type:      s.typ,
			Features:  append([]Bilingual(nil), s.features...),
			Status:    s.status,
			DateAdded: now.UTC(),
		}
		if withDescription {
			m.Description = s.description
		}
		out = append(out, m)
	}
	return out
}
