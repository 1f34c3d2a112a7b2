package mapper

import (
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/model"
)

type CompanyMapper struct{}

func NewCompanyMapper() *CompanyMapper {
	return &CompanyMapper{}
}

func (m *CompanyMapper) ToEntity(c *model.Company) *entity.Company {
	if c == nil {
		return nil
	}
	return &entity.Company{
		Id:           c.Id,
		UserId:       c.UserId,
		Name:         c.Name,
		Jurisdiction: entity.Jurisdiction(c.Jurisdiction),
		Description:  c.Description,
		HealthScore:  c.HealthScore,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *CompanyMapper) ToModel(c *entity.Company) *model.Company {
	if c == nil {
		return nil
	}
	return &model.Company{
		Id:           c.Id,
		UserId:       c.UserId,
		Name:         c.Name,
		Jurisdiction: string(c.Jurisdiction),
		Description:  c.Description,
		HealthScore:  c.HealthScore,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type FounderMapper struct{}

func NewFounderMapper() *FounderMapper {
	return &FounderMapper{}
}

func (m *FounderMapper) ToEntity(f *model.Founder) *entity.Founder {
	if f == nil {
		return nil
	}
	return &entity.Founder{
		Id:               f.Id,
		CompanyId:        f.CompanyId,
		Email:            f.Email,
		FirstName:        f.FirstName,
		LastName:         f.LastName,
		Role:             f.Role,
		EquityPercentage: f.EquityPercentage,
		Status:           entity.FounderStatus(f.Status),
		IdVerified:       f.IdVerified,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}

func (m *FounderMapper) ToModel(f *entity.Founder) *model.Founder {
	if f == nil {
		return nil
	}
	return &model.Founder{
		Id:               f.Id,
		CompanyId:        f.CompanyId,
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

func (m *FounderMapper) ToEntities(founders []*model.Founder) []*entity.Founder {
	entities := make([]*entity.Founder, len(founders))
	for i, f := range founders {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

type InvestorMapper struct{}

func NewInvestorMapper() *InvestorMapper {
	return &InvestorMapper{}
}

func (m *InvestorMapper) ToEntity(i *model.Investor) *entity.Investor {
	if i == nil {
		return nil
	}
	return &entity.Investor{
		Id:               i.Id,
		CompanyId:        i.CompanyId,
		Name:             i.Name,
		Email:            i.Email,
		InvestmentAmount: i.InvestmentAmount,
		Status:           entity.InvestorStatus(i.Status),
		SafeDocumentId:   i.SafeDocumentId,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func (m *InvestorMapper) ToModel(i *entity.Investor) *model.Investor {
	if i == nil {
		return nil
	}
	return &model.Investor{
		Id:               i.Id,
		CompanyId:        i.CompanyId,
		Name:             i.Name,
		Email:            i.Email,
		InvestmentAmount: i.InvestmentAmount,
		Status:           string(i.Status),
		SafeDocumentId:   i.SafeDocumentId,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func (m *InvestorMapper) ToEntities(investors []*model.Investor) []*entity.Investor {
	entities := make([]*entity.Investor, len(investors))
	for i, inv := range investors {
		entities[i] = m.ToEntity(inv)
	}
	return entities
}
