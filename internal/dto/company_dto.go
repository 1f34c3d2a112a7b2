package dto

import (
	"time"

	"incorporate-run-be/internal/entity"

	"github.com/google/uuid"
)

type CreateCompanyRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	Jurisdiction string `json:"jurisdiction" validate:"required,oneof=delaware france"`
	Description  string `json:"description"`
}

type UpdateCompanyRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	Jurisdiction *string `json:"jurisdiction" validate:"omitempty,oneof=delaware france"`
	Description  *string `json:"description"`
}

type CompanyResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Jurisdiction string    `json:"jurisdiction"`
	Description  string    `json:"description"`
	HealthScore  int       `json:"health_score"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewCompanyResponse(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		Id:           c.Id,
		Name:         c.Name,
		Jurisdiction: string(c.Jurisdiction),
		Description:  c.Description,
		HealthScore:  c.HealthScore,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ExtractedCompany and friends are both the structured output of entity
// extraction and the body of the onboarding endpoint.
type ExtractedCompany struct {
	Name         string `json:"name" validate:"required"`
	Jurisdiction string `json:"jurisdiction" validate:"required,oneof=delaware france"`
	Description  string `json:"description"`
}

type ExtractedFounder struct {
	FirstName        string  `json:"first_name" validate:"required"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email" validate:"required,email"`
	Role             string  `json:"role"`
	EquityPercentage float64 `json:"equity_percentage" validate:"gte=0,lte=100"`
}

type ExtractedInvestor struct {
	Name             string  `json:"name" validate:"required"`
	Email            string  `json:"email" validate:"required,email"`
	InvestmentAmount float64 `json:"investment_amount" validate:"gte=0"`
}

type ExtractedEntities struct {
	Company   ExtractedCompany    `json:"company" validate:"required"`
	Founders  []ExtractedFounder  `json:"founders" validate:"dive"`
	Investors []ExtractedInvestor `json:"investors" validate:"dive"`
}

type OnboardResponse struct {
	Company   CompanyResponse    `json:"company"`
	Founders  []FounderResponse  `json:"founders"`
	Investors []InvestorResponse `json:"investors"`
}
