package usecases

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"growfin.backend/internal/domain/entities"
)

// Per-product validation rules live in one enum-keyed table so adding a
// product is a single entry, not scattered conditionals.
type loanTypeRule struct {
	// required fields beyond the common set
	required []string
	// recognized fields: required plus optional extras; only these keys are
	// preserved into extra_data
	recognized []string
	// required document types beyond the common set
	documents []string
}

var commonRequiredFields = []string{
	"full_name",
	"nic_number",
	"mobile_number",
	"loan_type",
	"applied_amount",
	"tenure_months",
	"monthly_income",
	"monthly_expenses",
}

var commonRequiredDocuments = []string{
	entities.DocumentNICFront,
	entities.DocumentNICBack,
	entities.DocumentSelfieNIC,
}

var loanTypeRules = map[entities.LoanType]loanTypeRule{
	entities.LoanTypeGrowOnlineBusiness: {
		required: []string{
			"online_store_name",
			"platform",
			"online_store_link",
			"average_monthly_revenue_last_3_months",
			"main_product_category",
		},
		recognized: []string{
			"online_store_name",
			"platform",
			"online_store_link",
			"average_monthly_revenue_last_3_months",
			"main_product_category",
			"proof_screenshot_urls",
		},
		documents: []string{entities.DocumentStoreScreenshot},
	},
	entities.LoanTypeGrowBusiness: {
		required: []string{
			"business_name",
			"business_address",
			"monthly_sales",
			"business_type",
		},
		recognized: []string{
			"business_name",
			"business_address",
			"monthly_sales",
			"business_type",
			"business_registration_status",
			"business_reg_number",
			"stock_value",
			"years_in_business",
		},
	},
	entities.LoanTypeGrowPersonal: {
		required: []string{
			"employment_type",
			"net_monthly_salary",
		},
		recognized: []string{
			"employment_type",
			"net_monthly_salary",
			"employer_name",
			"job_title",
			"guarantor_name",
			"guarantor_nic",
			"guarantor_mobile",
			"guarantor_relationship",
		},
		documents: []string{entities.DocumentSalarySlip},
	},
	entities.LoanTypeGrowTeam: {
		required: []string{
			"group_name",
			"number_of_members",
			"team_leader_name",
			"team_leader_nic",
			"team_leader_mobile",
			"group_savings_amount",
			"group_business_activity",
		},
		recognized: []string{
			"group_name",
			"number_of_members",
			"team_leader_name",
			"team_leader_nic",
			"team_leader_mobile",
			"group_savings_amount",
			"group_business_activity",
			"member_list_document",
			"group_photo",
		},
		documents: []string{entities.DocumentMemberList, entities.DocumentGroupPhoto},
	},
}

// National ID: 9 digits followed by V/X (either case), or exactly 12 digits.
var nicPattern = regexp.MustCompile(`^(?:[0-9]{9}[VvXx]|[0-9]{12})$`)

// payloadValue returns the raw value for key, nil when absent.
func payloadValue(p entities.ApplicationPayload, key string) interface{} {
	if p == nil {
		return nil
	}
	return p[key]
}

// payloadString renders the value for key as a trimmed string; numbers keep
// their literal form. Absent and nil keys yield "".
func payloadString(p entities.ApplicationPayload, key string) string {
	v := payloadValue(p, key)
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func payloadPresent(p entities.ApplicationPayload, key string) bool {
	return payloadString(p, key) != ""
}

// parsePayloadDecimal parses a payload value as an exact decimal.
func parsePayloadDecimal(v interface{}) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, false
	case float64:
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case decimal.Decimal:
		return t, true
	default:
		d, err := decimal.NewFromString(fmt.Sprint(t))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
}

// parsePayloadInt parses a payload value as an integer. JSON numbers arrive
// as float64 and are truncated, matching the legacy behaviour.
func parsePayloadInt(v interface{}) (int, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return int(t), true
	case int:
		return t, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// ValidLoanType reports whether t names a supported product.
func ValidLoanType(t entities.LoanType) bool {
	_, ok := loanTypeRules[t]
	return ok
}

// CollectTypeData filters the payload down to the keys recognized for the
// loan type. Unknown keys are dropped, not persisted.
func CollectTypeData(loanType entities.LoanType, p entities.ApplicationPayload) map[string]interface{} {
	rule, ok := loanTypeRules[loanType]
	if !ok {
		return map[string]interface{}{}
	}
	out := make(map[string]interface{})
	for _, field := range rule.recognized {
		if v, present := p[field]; present {
			out[field] = v
		}
	}
	return out
}

// ValidatePayload checks the application payload against the common rules and
// the loan type's rule entry. It accumulates every violation rather than
// stopping at the first, so a client can surface all of them at once.
func ValidatePayload(p entities.ApplicationPayload, loanType entities.LoanType) []string {
	var errs []string

	for _, field := range commonRequiredFields {
		if !payloadPresent(p, field) {
			errs = append(errs, fmt.Sprintf("%s is required", field))
		}
	}

	if nic := payloadString(p, "nic_number"); nic != "" && !nicPattern.MatchString(nic) {
		errs = append(errs, "nic_number is invalid")
	}

	if !ValidLoanType(loanType) {
		errs = append(errs, "Invalid loan_type")
	}

	for _, field := range []string{"applied_amount", "monthly_income", "monthly_expenses"} {
		if _, ok := parsePayloadDecimal(payloadValue(p, field)); !ok {
			errs = append(errs, fmt.Sprintf("%s must be a number", field))
		}
	}

	if _, ok := parsePayloadInt(payloadValue(p, "tenure_months")); !ok {
		errs = append(errs, "tenure_months must be a number")
	}

	rule := loanTypeRules[loanType]
	for _, field := range rule.required {
		if !payloadPresent(p, field) {
			errs = append(errs, fmt.Sprintf("%s is required for %s", field, loanType))
		}
	}

	if loanType == entities.LoanTypeGrowPersonal && payloadString(p, "employment_type") == "salaried" {
		if !payloadPresent(p, "employer_name") {
			errs = append(errs, "employer_name is required for salaried employment")
		}
	}

	if loanType == entities.LoanTypeGrowTeam {
		if members, ok := parsePayloadInt(payloadValue(p, "number_of_members")); !ok {
			errs = append(errs, "number_of_members must be a number")
		} else if members <= 0 {
			errs = append(errs, "number_of_members must be greater than zero")
		}
	}

	return errs
}

// ValidateRequiredDocuments checks that every document type the product needs
// has been attached, reporting missing items grouped by category.
func ValidateRequiredDocuments(app *entities.LoanApplication) []string {
	var errs []string
	existing := app.DocumentTypes()

	var missingCommon []string
	for _, docType := range commonRequiredDocuments {
		if !existing[docType] {
			missingCommon = append(missingCommon, docType)
		}
	}
	if len(missingCommon) > 0 {
		sort.Strings(missingCommon)
		errs = append(errs, fmt.Sprintf("Missing documents: %s", strings.Join(missingCommon, ", ")))
	}

	var missingTyped []string
	for _, docType := range loanTypeRules[app.LoanType].documents {
		if !existing[docType] {
			missingTyped = append(missingTyped, docType)
		}
	}
	if len(missingTyped) > 0 {
		sort.Strings(missingTyped)
		errs = append(errs, fmt.Sprintf("Missing documents for %s: %s", app.LoanType, strings.Join(missingTyped, ", ")))
	}

	return errs
}
