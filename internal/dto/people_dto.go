package dto

import (
	"time"

	"incorporate-run-be/internal/entity"

	"github.com/google/uuid"
)

type InviteFounderRequest struct {
	Email            string  `json:"email" validate:"required,email"`
	FirstName        string  `json:"first_name" validate:"required"`
	LastName         string  `json:"last_name"`
	Role             string  `json:"role"`
	EquityPercentage float64 `json:"equity_percentage" validate:"gte=0,lte=100"`
}

type UpdateFounderRequest struct {
	FirstName        *string  `json:"first_name" validate:"omitempty,min=1"`
	LastName         *string  `json:"last_name"`
	Role             *string  `json:"role"`
	EquityPercentage *float64 `json:"equity_percentage" validate:"omitempty,gte=0,lte=100"`
	IdVerified       *bool    `json:"id_verified"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type FounderResponse struct {
	Id               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Role             string    `json:"role"`
	EquityPercentage float64   `json:"equity_percentage"`
	Status           string    `json:"status"`
	IdVerified       bool      `json:"id_verified"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewFounderResponse(f *entity.Founder) FounderResponse {
	return FounderResponse{
		Id:               f.Id,
		Email:            f.Email,
		FirstName:        f.FirstName,
		LastName:         f.LastName,
		Role:             f.Role,
		EquityPercentage: f.EquityPercentage,
		Status:           string(f.Status),
		IdVerified:       f.IdVerified,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}

func NewFounderResponses(founders []*entity.Founder) []FounderResponse {
	res := make([]FounderResponse, len(founders))
	for i, f := range founders {
		res[i] = NewFounderResponse(f)
	}
	return res
}

type AddInvestorRequest struct {
	Name             string  `json:"name" validate:"required"`
	Email            string  `json:"email" validate:"required,email"`
	InvestmentAmount float64 `json:"investment_amount" validate:"gt=0"`
}

type UpdateInvestorRequest struct {
	Name             *string  `json:"name" validate:"omitempty,min=1"`
	Email            *string  `json:"email" validate:"omitempty,email"`
	InvestmentAmount *float64 `json:"investment_amount" validate:"omitempty,gt=0"`
}

type InvestorResponse struct {
	Id               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	InvestmentAmount float64    `json:"investment_amount"`
	Status           string     `json:"status"`
	SafeDocumentId   *uuid.UUID `json:"safe_document_id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func NewInvestorResponse(i *entity.Investor) InvestorResponse {
	return InvestorResponse{
		Id:               i.Id,
		Name:             i.Name,
		Email:            i.Email,
		InvestmentAmount: i.InvestmentAmount,
		Status:           string(i.Status),
		SafeDocumentId:   i.SafeDocumentId,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func NewInvestorResponses(investors []*entity.Investor) []InvestorResponse {
	res := make([]InvestorResponse, len(investors))
	for i, inv := range investors {
		res[i] = NewInvestorResponse(inv)
	}
	return res
}
