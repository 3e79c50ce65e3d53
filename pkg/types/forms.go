package types

// LeadForm is the accumulated state of a lead form. Every field is a string
// (or string slice) so partially typed input survives a failed validation
// and can be rendered back into the page.
type LeadForm struct {
	FirstName string `form:"first_name" json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `form:"last_name" json:"last_name" validate:"required,min=2,max=50"`
	Email     string `form:"email" json:"email" validate:"required,email,max=254"`
	Phone     string `form:"phone" json:"phone" validate:"required,phone"`

	ServiceType    string `form:"service_type" json:"service_type" validate:"required,oneof=general credit_repair funding business_funding"`
	FundingGoal    string `form:"funding_goal" json:"funding_goal" validate:"required,money"`
	ApplicantType  string `form:"applicant_type" json:"applicant_type" validate:"required,oneof=individual business"`
	YearlyRevenue  string `form:"yearly_revenue" json:"yearly_revenue" validate:"required,oneof=under_100k 100k_250k 250k_500k 500k_1m over_1m"`
	BusinessName   string `form:"business_name" json:"business_name" validate:"required,max=120"`
	TimeInBusiness string `form:"time_in_business" json:"time_in_business" validate:"required,oneof=under_1_year 1_2_years 2_5_years over_5_years"`

	CreditScore   string   `form:"credit_score" json:"credit_score" validate:"required,oneof=300_579 580_669 670_739 740_799 800_850 unknown"`
	CreditProfile []string `form:"credit_profile" json:"credit_profile" validate:"min=1,dive,oneof=late_payments_2_years late_payments_5_years collections bankruptcy clean"`

	TermsAccepted bool `form:"terms_accepted" json:"terms_accepted" validate:"eq=true"`
}

// Option is a value/label pair rendered as a radio, checkbox or select entry.
type Option struct {
	Value string
	Label string
}

var ServiceTypeOptions = []Option{
	{Value: string(ServiceTypeGeneral), Label: "I'm not sure yet"},
	{Value: string(ServiceTypeCreditRepair), Label: "Repair my credit"},
	{Value: string(ServiceTypeFunding), Label: "Personal funding"},
	{Value: string(ServiceTypeBusinessFunding), Label: "Business funding"},
}

var ApplicantTypeOptions = []Option{
	{Value: string(ApplicantTypeIndividual), Label: "Individual"},
	{Value: string(ApplicantTypeBusiness), Label: "Business"},
}

var YearlyRevenueOptions = []Option{
	{Value: "under_100k", Label: "Under $100K"},
	{Value: "100k_250k", Label: "$100K - $250K"},
	{Value: "250k_500k", Label: "$250K - $500K"},
	{Value: "500k_1m", Label: "$500K - $1M"},
	{Value: "over_1m", Label: "Over $1M"},
}

var TimeInBusinessOptions = []Option{
	{Value: "under_1_year", Label: "Less than 1 year"},
	{Value: "1_2_years", Label: "1 - 2 years"},
	{Value: "2_5_years", Label: "2 - 5 years"},
	{Value: "over_5_years", Label: "More than 5 years"},
}

var CreditScoreOptions = []Option{
	{Value: string(CreditScorePoor), Label: "300 - 579"},
	{Value: string(CreditScoreFair), Label: "580 - 669"},
	{Value: string(CreditScoreGood), Label: "670 - 739"},
	{Value: string(CreditScoreVeryGood), Label: "740 - 799"},
	{Value: string(CreditScoreExcellent), Label: "800 - 850"},
	{Value: string(CreditScoreUnknown), Label: "I don't know"},
}

var CreditProfileOptions = []Option{
	{Value: string(CreditProfileLatePayments2Years), Label: "Late payments in the last 2 years"},
	{Value: string(CreditProfileLatePayments5Years), Label: "Late payments in the last 5 years"},
	{Value: string(CreditProfileCollections), Label: "Collections"},
	{Value: string(CreditProfileBankruptcy), Label: "Bankruptcy"},
	{Value: string(CreditProfileClean), Label: "None of the above"},
}
