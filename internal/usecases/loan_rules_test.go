package usecases_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"growfin.backend/internal/domain/entities"
	"growfin.backend/internal/usecases"
)

func basePayload(loanType string) entities.ApplicationPayload {
	return entities.ApplicationPayload{
		"loan_type":        loanType,
		"full_name":        "Nimal Perera",
		"nic_number":       "912345678V",
		"mobile_number":    "0771234567",
		"applied_amount":   50000.0,
		"tenure_months":    12.0,
		"monthly_income":   80000.0,
		"monthly_expenses": 30000.0,
	}
}

func TestValidatePayload_NICFormats(t *testing.T) {
	valid := []string{"912345678V", "912345678v", "912345678X", "912345678x", "199234567890"}
	for _, nic := range valid {
		p := basePayload("GROW_BUSINESS")
		p["nic_number"] = nic
		p["business_name"] = "Corner Shop"
		p["business_address"] = "Galle Road"
		p["monthly_sales"] = 120000.0
		p["business_type"] = "retail"

		errs := usecases.ValidatePayload(p, entities.LoanTypeGrowBusiness)
		assert.Empty(t, errs, "nic %q should be accepted", nic)
	}

	invalid := []string{"12345678V", "9123456789V", "91234567", "1992345678901", "ABCDEFGHIV"}
	for _, nic := range invalid {
		p := basePayload("GROW_BUSINESS")
		p["nic_number"] = nic

		errs := usecases.ValidatePayload(p, entities.LoanTypeGrowBusiness)
		assert.Contains(t, errs, "nic_number is invalid", "nic %q should be rejected", nic)
	}
}

func TestValidatePayload_TypeSpecificRequirements(t *testing.T) {
	cases := []struct {
		loanType entities.LoanType
		missing  []string
	}{
		{entities.LoanTypeGrowOnlineBusiness, []string{
			"online_store_name", "platform", "online_store_link",
			"average_monthly_revenue_last_3_months", "main_product_category",
		}},
		{entities.LoanTypeGrowBusiness, []string{
			"business_name", "business_address", "monthly_sales", "business_type",
		}},
		{entities.LoanTypeGrowPersonal, []string{
			"employment_type", "net_monthly_salary",
		}},
		{entities.LoanTypeGrowTeam, []string{
			"group_name", "number_of_members", "team_leader_name", "team_leader_nic",
			"team_leader_mobile", "group_savings_amount", "group_business_activity",
		}},
	}

	for _, tc := range cases {
		t.Run(string(tc.loanType), func(t *testing.T) {
			errs := usecases.ValidatePayload(basePayload(string(tc.loanType)), tc.loanType)
			for _, field := range tc.missing {
				assert.Contains(t, errs, fmt.Sprintf("%s is required for %s", field, tc.loanType))
			}
		})
	}
}

func TestValidatePayload_SalariedNeedsEmployer(t *testing.T) {
	p := basePayload("GROW_PERSONAL")
	p["employment_type"] = "salaried"
	p["net_monthly_salary"] = 65000.0

	errs := usecases.ValidatePayload(p, entities.LoanTypeGrowPersonal)
	assert.Contains(t, errs, "employer_name is required for salaried employment")

	p["employer_name"] = "Ceylon Tea Exports"
	errs = usecases.ValidatePayload(p, entities.LoanTypeGrowPersonal)
	assert.Empty(t, errs)
}

func TestValidatePayload_TeamSize(t *testing.T) {
	p := basePayload("GROW_TEAM")
	p["group_name"] = "Hill Weavers"
	p["number_of_members"] = 0.0
	p["team_leader_name"] = "Sita"
	p["team_leader_nic"] = "912345678V"
	p["team_leader_mobile"] = "0770000000"
	p["group_savings_amount"] = 25000.0
	p["group_business_activity"] = "weaving"

	errs := usecases.ValidatePayload(p, entities.LoanTypeGrowTeam)
	assert.Contains(t, errs, "number_of_members must be greater than zero")

	p["number_of_members"] = 5.0
	errs = usecases.ValidatePayload(p, entities.LoanTypeGrowTeam)
	assert.Empty(t, errs)
}

func TestValidatePayload_UnknownLoanType(t *testing.T) {
	errs := usecases.ValidatePayload(basePayload("GROW_YACHT"), entities.LoanType("GROW_YACHT"))
	assert.Contains(t, errs, "Invalid loan_type")
}

func TestCollectTypeData_DropsUnknownKeys(t *testing.T) {
	p := entities.ApplicationPayload{
		"business_name":  "Corner Shop",
		"monthly_sales":  120000.0,
		"favorite_color": "blue",
		"full_name":      "Nimal Perera",
	}

	data := usecases.CollectTypeData(entities.LoanTypeGrowBusiness, p)
	assert.Equal(t, "Corner Shop", data["business_name"])
	assert.Equal(t, 120000.0, data["monthly_sales"])
	assert.NotContains(t, data, "favorite_color")
	assert.NotContains(t, data, "full_name")

	assert.Empty(t, usecases.CollectTypeData(entities.LoanType("GROW_YACHT"), p))
}

func TestValidateRequiredDocuments(t *testing.T) {
	app := &entities.LoanApplication{
		LoanType: entities.LoanTypeGrowOnlineBusiness,
		Documents: []entities.LoanApplicationDocument{
			{DocumentType: entities.DocumentNICFront},
		},
	}

	errs := usecases.ValidateRequiredDocuments(app)
	assert.Contains(t, errs, "Missing documents: NIC_BACK, SELFIE_NIC")
	assert.Contains(t, errs, "Missing documents for GROW_ONLINE_BUSINESS: STORE_SCREENSHOT")

	app.Documents = append(app.Documents,
		entities.LoanApplicationDocument{DocumentType: entities.DocumentNICBack},
		entities.LoanApplicationDocument{DocumentType: entities.DocumentSelfieNIC},
		entities.LoanApplicationDocument{DocumentType: entities.DocumentStoreScreenshot},
	)
	assert.Empty(t, usecases.ValidateRequiredDocuments(app))
}
