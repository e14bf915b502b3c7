package chatService

// Verified LAPO facts the gateway prompt is grounded on. The prompt forbids
// the model from inventing anything outside these tables.

type companyInfo struct {
	FullName       string
	Founded        string
	Founder        string
	Transformation string
	Mission        string
	Focus          string
	Branches       string
	Presence       string
}

type contactInfo struct {
	Website          string
	Phone            string
	AlternativePhone string
	Email            string
	CustomerService  string
}

var lapoCompany = companyInfo{
	FullName:       "Lift Above Poverty Organization (LAPO) Microfinance Bank",
	Founded:        "1987",
	Founder:        "Godwin Ehigiamusoe",
	Transformation: "Started as NGO in 1987, became microfinance bank in 2010",
	Mission:        "Lift people above poverty through financial inclusion",
	Focus:          "Low-income individuals, women, rural communities, small business owners",
	Branches:       "500+",
	Presence:       "Across Nigeria",
}

var lapoContact = contactInfo{
	Website:          "www.lapo-nigeria.org",
	Phone:            "0700-LAPO-MFB",
	AlternativePhone: "0700-5276-632",
	Email:            "info@lapo-nigeria.org",
	CustomerService:  "Available Monday-Friday, 8AM-5PM",
}

type labeledFact struct {
	Label string
	Text  string
}

var lapoLoanTypes = []labeledFact{
	{"Personal", "For individual needs with flexible repayment"},
	{"Business", "For entrepreneurs and traders (SME loans)"},
	{"Education", "For students and parents - covers school fees, books, accommodation"},
	{"Micro", "Small loans for low-income earners starting businesses"},
}

var lapoLoanRates = []labeledFact{
	{"Personal", "2.5% - 5% monthly (varies by amount and tenure)"},
	{"Business", "2% - 4% monthly (competitive rates for SMEs)"},
	{"Education", "2% - 3.5% monthly (special student rates)"},
	{"Micro", "3% - 5% monthly"},
}

const lapoRatesNote = "Exact rates depend on loan amount, repayment period, customer profile, and collateral provided"

var lapoAccounts = []labeledFact{
	{"Savings", "Personal savings with competitive interest rates"},
	{"Premium", "For high-income earners with investment opportunities"},
	{"Fixed", "Higher interest for long-term commitments"},
}

var lapoDigital = []labeledFact{
	{"Mobile", "Mobile banking app available"},
	{"Transfers", "Domestic money transfers and payments"},
	{"Alerts", "SMS and email notifications"},
}

var lapoLoanRequirements = []string{
	"Valid government-issued ID (National ID, Driver's License, or International Passport)",
	"Proof of income or business registration",
	"Bank Verification Number (BVN)",
	"Guarantor or collateral (depending on loan amount)",
	"Passport photograph (2 copies)",
	"Proof of address (utility bill not older than 3 months)",
	"Completed application form",
}

var lapoAccountRequirements = []string{
	"Valid government-issued ID",
	"Proof of address (utility bill, rent receipt)",
	"Passport photograph (2 copies)",
	"Bank Verification Number (BVN)",
	"Minimum opening deposit (varies by account type: ₦1,000 - ₦10,000)",
	"Completed account opening form",
}

var lapoLoanProcess = []string{
	"Visit any LAPO branch or apply online",
	"Complete the loan application form",
	"Submit required documents",
	"Meet with loan officer for assessment",
	"Await approval (typically 3-7 business days)",
	"Sign loan agreement upon approval",
	"Receive funds in your account",
}

var lapoAccountProcess = []string{
	"Visit nearest LAPO branch",
	"Request account opening form",
	"Submit completed form with required documents",
	"Make minimum opening deposit",
	"Receive account number and welcome kit",
	"Activate mobile banking (optional)",
}
