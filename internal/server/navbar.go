package server

import (
	"strings"

	"fundpath/pkg/types"
)

var navLinks = []types.NavLink{
	{Label: "Credit Repair", Href: "/credit-repair"},
	{Label: "Funding", Href: "/funding"},
	{Label: "Pricing", Href: "/pricing"},
	{Label: "About", Href: "/about"},
	{Label: "Español", Href: "/es/aplicar"},
}

func navbarFor(path string) types.NavbarData {
	links := make([]types.NavLink, len(navLinks))
	for i, link := range navLinks {
		link.Active = path == link.Href || strings.HasPrefix(path, link.Href+"/")
		links[i] = link
	}

	return types.NavbarData{
		Links:    links,
		ApplyURL: "/apply",
	}
}
