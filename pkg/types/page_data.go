package types

type NavLink struct {
	Label  string
	Href   string
	Active bool
}

type NavbarData struct {
	Links    []NavLink
	ApplyURL string
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

type BasePageData struct {
	Title  string
	Lang   string
	Navbar NavbarData
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

type ServiceCard struct {
	Title       string
	Description string
	Href        string
}

type HomePageData struct {
	BasePageData
	Notice   string
	Error    string
	Services []ServiceCard
	Steps    []StepData
}

type StepData struct {
	Number      int
	Title       string
	Description string
}

type ProductPageData struct {
	BasePageData
	Headline string
	Summary  string
	Bullets  []string
	ApplyURL string
}

type PricingPlan struct {
	Name     string
	Price    string
	Cadence  string
	Features []string
	ApplyURL string
}

type PricingPageData struct {
	BasePageData
	Plans []PricingPlan
}

type NotFoundPageData struct {
	BasePageData
	Path string
}

// FormOptions carries every option list a step template may render.
type FormOptions struct {
	ServiceTypes   []Option
	ApplicantTypes []Option
	YearlyRevenue  []Option
	TimeInBusiness []Option
	CreditScores   []Option
	CreditProfile  []Option
}

type FormPageData struct {
	BasePageData
	FlowID      string
	FlowTitle   string
	Action      string
	StepID      string
	StepTitle   string
	StepNumber  int
	TotalSteps  int
	Progress    int
	IsFirst     bool
	IsLast      bool
	Values      LeadForm
	Selected    map[string]bool
	FieldErrors map[string]string
	Error       string
	Options     FormOptions
	Labels      map[string]string
}

type ThankYouPageData struct {
	BasePageData
	FirstName string
	HomeURL   string
	Labels    map[string]string
}
