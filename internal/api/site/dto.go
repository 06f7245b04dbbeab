package siteapi

import "zozikafe/internal/public"

type MachinesResponse struct {
	Lang     string        `json:"lang"`
	Machines []public.Card `json:"machines"`
}

// PageView is the public page plus contact form prefill from a card's
// call to action.
type PageView struct {
	public.Page
	Inquiry string
	Message string
}
