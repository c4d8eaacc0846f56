package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/proquote/internal/cli/formatter"
	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// proquoteHuhTheme returns a huh theme using the formatter palette.
func proquoteHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// intakeAnswers collects who the proposal is for, what they need and how
// the letter is signed.
type intakeAnswers struct {
	Company      string
	Recipient    string
	Profile      string
	Requirements string

	Subject       string
	From          string
	SignatureName string
	SignatureFont string
	Bank          string
	AccountNumber string
	AccountName   string
}

func (a intakeAnswers) clientProfile() (domain.ClientProfile, error) {
	p := domain.ProfileType(strings.ToLower(strings.TrimSpace(a.Profile)))
	if p == "" {
		p = domain.ProfileOther
	}
	if !domain.ValidProfileTypes[p] {
		return domain.ClientProfile{}, fmt.Errorf("unknown client profile %q (startup, multinational, government, other)", a.Profile)
	}
	return domain.ClientProfile{
		RecipientName: strings.TrimSpace(a.Recipient),
		CompanyName:   strings.TrimSpace(a.Company),
		ProfileType:   p,
	}, nil
}

func (a intakeAnswers) details() (domain.ProposalDetails, error) {
	font := domain.SignatureFont(strings.ToLower(strings.TrimSpace(a.SignatureFont)))
	if font != "" && !domain.ValidSignatureFonts[font] {
		return domain.ProposalDetails{}, fmt.Errorf("unknown signature font %q (dancing-script, pacifico, sacramento, great-vibes)", a.SignatureFont)
	}
	d := domain.ProposalDetails{
		Subject:              strings.TrimSpace(a.Subject),
		From:                 strings.TrimSpace(a.From),
		SignatureName:        strings.TrimSpace(a.SignatureName),
		SignatureFont:        font,
		PaymentBank:          strings.TrimSpace(a.Bank),
		PaymentAccountNumber: strings.TrimSpace(a.AccountNumber),
		PaymentAccountName:   strings.TrimSpace(a.AccountName),
	}
	if d.PaymentBank != "" && d.PaymentAccountNumber == "" {
		return domain.ProposalDetails{}, errors.New("--bank needs --account-number")
	}
	return d, nil
}

func intakeForm(a *intakeAnswers) *huh.Form {
	if a.Profile == "" {
		a.Profile = string(domain.ProfileOther)
	}
	if a.SignatureFont == "" {
		a.SignatureFont = string(domain.DefaultSignatureFont)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Client Company").
				Placeholder("PT Sinar Jaya").
				Value(&a.Company),
			huh.NewInput().
				Title("Recipient").
				Placeholder("Bapak Budi").
				Value(&a.Recipient),
			huh.NewSelect[string]().
				Title("Client Profile").
				Options(
					huh.NewOption("Startup", string(domain.ProfileStartup)),
					huh.NewOption("Multinational", string(domain.ProfileMultinational)),
					huh.NewOption("Government", string(domain.ProfileGovernment)),
					huh.NewOption("Other", string(domain.ProfileOther)),
				).
				Value(&a.Profile),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Requirements").
				Description("Paste the project requirements or meeting notes.").
				CharLimit(20000).
				Value(&a.Requirements).
				Validate(validateRequired),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				Placeholder("Penawaran Pengembangan Aplikasi Kasir").
				Value(&a.Subject),
			huh.NewInput().
				Title("From").
				Description("Your company, printed as the sender.").
				Value(&a.From),
			huh.NewInput().
				Title("Signed by").
				Value(&a.SignatureName),
			huh.NewSelect[string]().
				Title("Signature Font").
				Options(
					huh.NewOption("Dancing Script", string(domain.FontDancingScript)),
					huh.NewOption("Pacifico", string(domain.FontPacifico)),
					huh.NewOption("Sacramento", string(domain.FontSacramento)),
					huh.NewOption("Great Vibes", string(domain.FontGreatVibes)),
				).
				Value(&a.SignatureFont),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Payment Bank").
				Description("Leave empty to omit the payment account.").
				Value(&a.Bank),
			huh.NewInput().
				Title("Account Number").
				Value(&a.AccountNumber).
				Validate(func(s string) error {
					if strings.TrimSpace(a.Bank) != "" {
						return validateRequired(s)
					}
					return nil
				}),
			huh.NewInput().
				Title("Account Name").
				Value(&a.AccountName),
		),
	).WithTheme(proquoteHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}
