package command

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/proquote/internal/domain"
)

func applySetTechStack(doc domain.Proposal, c SetTechStack) (domain.Proposal, string) {
	tech := strings.TrimSpace(c.Technology)
	if tech == "" {
		return doc, ""
	}

	switch c.Action {
	case TechAdd:
		if doc.HasTechnology(tech) {
			return doc, fmt.Sprintf("%s is already in the tech stack.", tech)
		}
		out := doc.Clone()
		out.TechStack = append(out.TechStack, tech)
		return out, fmt.Sprintf("Added %s to the tech stack.", tech)

	case TechRemove:
		if !doc.HasTechnology(tech) {
			return doc, fmt.Sprintf("%s is not in the tech stack.", tech)
		}
		out := doc.Clone()
		kept := out.TechStack[:0]
		for _, t := range out.TechStack {
			if !domain.SameLabel(t, tech) {
				kept = append(kept, t)
			}
		}
		out.TechStack = kept
		return out, fmt.Sprintf("Removed %s from the tech stack.", tech)

	default:
		return doc, ""
	}
}
