package domain

import (
	"strings"
	"time"
	"unicode"
)

// SalarySourceManual marks a salary typed in by the preparer rather than
// taken from an oracle suggestion.
const SalarySourceManual = "Manual"

type ProfileType string

const (
	ProfileStartup       ProfileType = "startup"
	ProfileMultinational ProfileType = "multinational"
	ProfileGovernment    ProfileType = "government"
	ProfileOther         ProfileType = "other"
)

// ValidProfileTypes is the canonical set of accepted client profile labels.
var ValidProfileTypes = map[ProfileType]bool{
	ProfileStartup: true, ProfileMultinational: true,
	ProfileGovernment: true, ProfileOther: true,
}

// ClientProfile describes who the proposal is addressed to. ProfileType is
// the label handed to the extraction step so estimates fit the client.
type ClientProfile struct {
	RecipientName string      `json:"recipient_name" yaml:"recipient_name"`
	CompanyName   string      `json:"company_name" yaml:"company_name"`
	ProfileType   ProfileType `json:"profile_type" yaml:"profile_type"`
}

// Label returns a one-line description of the client for prompts and headers.
func (c ClientProfile) Label() string {
	profile := string(c.ProfileType)
	if profile == "" {
		profile = string(ProfileOther)
	}
	name := CoalesceStr(c.CompanyName, c.RecipientName)
	if name == "" {
		return profile
	}
	return name + " (" + profile + ")"
}

// SignatureFont names the handwriting face used for the printed signature.
type SignatureFont string

const (
	FontDancingScript SignatureFont = "dancing-script"
	FontPacifico      SignatureFont = "pacifico"
	FontSacramento    SignatureFont = "sacramento"
	FontGreatVibes    SignatureFont = "great-vibes"
)

// DefaultSignatureFont is used when a signature has no font chosen.
const DefaultSignatureFont = FontDancingScript

var ValidSignatureFonts = map[SignatureFont]bool{
	FontDancingScript: true, FontPacifico: true,
	FontSacramento: true, FontGreatVibes: true,
}

// ProposalDetails is the letter around the quote: who sends it, who signs it
// and where the client pays. Every field is optional.
type ProposalDetails struct {
	Subject              string        `json:"subject,omitempty" yaml:"subject,omitempty"`
	From                 string        `json:"from,omitempty" yaml:"from,omitempty"`
	SignatureName        string        `json:"signature_name,omitempty" yaml:"signature_name,omitempty"`
	SignatureFont        SignatureFont `json:"signature_font,omitempty" yaml:"signature_font,omitempty"`
	PaymentBank          string        `json:"payment_bank,omitempty" yaml:"payment_bank,omitempty"`
	PaymentAccountNumber string        `json:"payment_account_number,omitempty" yaml:"payment_account_number,omitempty"`
	PaymentAccountName   string        `json:"payment_account_name,omitempty" yaml:"payment_account_name,omitempty"`
}

// Font returns the chosen signature font or the default.
func (d ProposalDetails) Font() SignatureFont {
	if d.SignatureFont == "" {
		return DefaultSignatureFont
	}
	return d.SignatureFont
}

// HasPaymentAccount reports whether a bank account should be printed.
func (d ProposalDetails) HasPaymentAccount() bool {
	return strings.TrimSpace(d.PaymentBank) != ""
}

type Role struct {
	Title         string  `json:"title" yaml:"title"`
	Headcount     int     `json:"headcount" yaml:"headcount"`
	MonthlySalary float64 `json:"monthly_salary" yaml:"monthly_salary"`
	SalarySource  string  `json:"salary_source" yaml:"salary_source"`
}

type CostDetails struct {
	TechnicalCapital    float64 `json:"technical_capital" yaml:"technical_capital"`
	ProfitMarginPercent float64 `json:"profit_margin_percent" yaml:"profit_margin_percent"`
}

type TimelineEntry struct {
	Month    int    `json:"month" yaml:"month"`
	Phase    string `json:"phase" yaml:"phase"`
	Activity string `json:"activity" yaml:"activity"`
}

// SalarySuggestion is one candidate monthly salary from a named source.
type SalarySuggestion struct {
	Source string  `json:"source" yaml:"source"`
	Salary float64 `json:"salary" yaml:"salary"`
}

// Proposal is the aggregate root of an editing session. It is only mutated
// through the command dispatcher; everything else reads clones.
type Proposal struct {
	ID               string          `json:"id" yaml:"id"`
	Client           ClientProfile   `json:"client" yaml:"client"`
	Details          ProposalDetails `json:"details" yaml:"details"`
	Summary          string          `json:"summary" yaml:"summary"`
	RequiredFeatures []string        `json:"required_features" yaml:"required_features"`
	Roles            []Role          `json:"roles" yaml:"roles"`
	Costs            CostDetails     `json:"costs" yaml:"costs"`
	Timeline         []TimelineEntry `json:"timeline" yaml:"timeline"`
	TechStack        []string        `json:"tech_stack" yaml:"tech_stack"`
	CreatedAt        time.Time       `json:"created_at" yaml:"created_at"`
}

// ProjectDurationMonths is the highest month in the timeline, or 0 when the
// timeline is empty.
func (p *Proposal) ProjectDurationMonths() int {
	max := 0
	for _, e := range p.Timeline {
		if e.Month > max {
			max = e.Month
		}
	}
	return max
}

// FindRole returns the index of the role whose title matches
// case-insensitively, or -1.
func (p *Proposal) FindRole(title string) int {
	for i, r := range p.Roles {
		if SameLabel(r.Title, title) {
			return i
		}
	}
	return -1
}

// FindMonth returns the index of the timeline entry for month, or -1.
func (p *Proposal) FindMonth(month int) int {
	for i, e := range p.Timeline {
		if e.Month == month {
			return i
		}
	}
	return -1
}

// HasTechnology reports whether the tech stack holds tech, ignoring case.
func (p *Proposal) HasTechnology(tech string) bool {
	for _, t := range p.TechStack {
		if SameLabel(t, tech) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so that callers holding the old snapshot are
// unaffected by later edits.
func (p Proposal) Clone() Proposal {
	out := p
	out.RequiredFeatures = cloneSlice(p.RequiredFeatures)
	out.Roles = cloneSlice(p.Roles)
	out.Timeline = cloneSlice(p.Timeline)
	out.TechStack = cloneSlice(p.TechStack)
	return out
}

// SameLabel compares titles and technology names the way the proposal
// identifies them: trimmed and case-insensitive.
func SameLabel(a, b string) bool {
	return LabelKey(a) == LabelKey(b)
}

// LabelKey is the identity of a title or technology name. Two labels share
// a key exactly when strings.EqualFold reports them equal after trimming, so
// it is safe to use as a map key wherever SameLabel is the comparison.
func LabelKey(s string) string {
	return strings.Map(foldRune, strings.TrimSpace(s))
}

// foldRune maps r to the smallest rune of its case-folding orbit.
func foldRune(r rune) rune {
	min := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < min {
			min = f
		}
	}
	return min
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
